package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
	"github.com/cognicore/sieve/pkg/sieve/store"
)

// driverName is the database/sql driver registered by pgx.
const driverName = "pgx"

// Config holds connection parameters. They are passed through to the
// driver as-is.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Validate checks that a database name is set.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBName) == "" {
		return fmt.Errorf("%w: postgres: dbname is empty", internalerr.ErrInvalidConfig)
	}
	return nil
}

// DSN renders the keyword/value connection string.
func (c Config) DSN() string {
	var parts []string
	add := func(k, v string) {
		if v == "" {
			return
		}
		parts = append(parts, k+"="+quote(v))
	}
	add("host", c.Host)
	if c.Port > 0 {
		add("port", strconv.Itoa(c.Port))
	}
	add("user", c.User)
	add("password", c.Password)
	add("dbname", c.DBName)
	add("sslmode", c.SSLMode)
	return strings.Join(parts, " ")
}

// quote escapes a connection string value when it needs it.
func quote(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

type postgresStore struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg Config) (store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping %s: %w", cfg.Host, err)
	}
	return New(db), nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) store.Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}

func (s *postgresStore) EnsureTable(ctx context.Context, table string) error {
	if err := store.ValidateTable(table); err != nil {
		return err
	}

	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id SERIAL PRIMARY KEY,
			date DATE,
			text TEXT
		)`, table)

	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

func (s *postgresStore) InsertText(ctx context.Context, table string, row store.Row) (int64, error) {
	if err := store.ValidateTable(table); err != nil {
		return 0, err
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (date, text) VALUES ($1, $2) RETURNING id`, table)

	var id int64
	if err := s.db.QueryRowContext(ctx, stmt, store.DateOnly(row.Date), row.Text).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	return id, nil
}

func (s *postgresStore) ListTexts(ctx context.Context, table string, limit int) ([]store.Row, error) {
	if err := store.ValidateTable(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, date, text FROM %s ORDER BY id`, table)
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	defer rows.Close()

	var out []store.Row
	for rows.Next() {
		var (
			r    store.Row
			date sql.NullTime
			text sql.NullString
		)
		if err := rows.Scan(&r.ID, &date, &text); err != nil {
			return nil, err
		}
		r.Date = date.Time
		r.Text = text.String
		out = append(out, r)
	}
	return out, rows.Err()
}
