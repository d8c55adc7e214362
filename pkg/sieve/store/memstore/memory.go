package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/sieve/pkg/sieve/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

type table struct {
	nextID int64
	rows   []store.Row
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{tables: make(map[string]*table)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// EnsureTable implements store.Store.
func (s *Store) EnsureTable(ctx context.Context, name string) error {
	if err := store.ValidateTable(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[name]; !ok {
		s.tables[name] = &table{nextID: 1}
	}
	return nil
}

// InsertText implements store.Store. Like a real database it fails for unknown tables.
func (s *Store) InsertText(ctx context.Context, name string, row store.Row) (int64, error) {
	if err := store.ValidateTable(name); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[name]
	if !ok {
		return 0, fmt.Errorf("no such table: %s", name)
	}
	row.ID = t.nextID
	row.Date = store.DateOnly(row.Date)
	t.nextID++
	t.rows = append(t.rows, row)
	return row.ID, nil
}

// ListTexts implements store.Store.
func (s *Store) ListTexts(ctx context.Context, name string, limit int) ([]store.Row, error) {
	if err := store.ValidateTable(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", name)
	}
	n := len(t.rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]store.Row, n)
	copy(out, t.rows[:n])
	return out, nil
}

// Tables returns the number of tables created.
func (s *Store) Tables() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
