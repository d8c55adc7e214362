package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/sieve/pkg/sieve/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// EnsureTable creates the table if it doesn't exist
func (s *sqliteStore) EnsureTable(ctx context.Context, table string) error {
	if err := store.ValidateTable(table); err != nil {
		return err
	}

	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	text TEXT NOT NULL
);
`, table)

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// InsertText appends a row
func (s *sqliteStore) InsertText(ctx context.Context, table string, row store.Row) (int64, error) {
	if err := store.ValidateTable(table); err != nil {
		return 0, err
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (date, text) VALUES (?, ?) RETURNING id;`, table)

	var id int64
	err := s.db.QueryRowContext(ctx, stmt, row.Date.Format(store.DateLayout), row.Text).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListTexts returns rows in insertion order
func (s *sqliteStore) ListTexts(ctx context.Context, table string, limit int) ([]store.Row, error) {
	if err := store.ValidateTable(table); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, date, text FROM %s ORDER BY id LIMIT ?`, table), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Row
	for rows.Next() {
		var (
			r    store.Row
			date string
		)
		if err := rows.Scan(&r.ID, &date, &r.Text); err != nil {
			return nil, err
		}
		if r.Date, err = time.Parse(store.DateLayout, date); err != nil {
			return nil, fmt.Errorf("row %d: parse date %q: %w", r.ID, date, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
