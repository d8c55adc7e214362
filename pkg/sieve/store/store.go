package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "speeches"

// DateLayout is the text form of Row.Date.
const DateLayout = "2006-01-02"

// Store persists the concatenated text of processed documents.
//
// Every table has the schema {id auto-increment, date DATE, text TEXT}.
type Store interface {
	Close() error

	// EnsureTable creates the table if it does not exist. It is idempotent.
	EnsureTable(ctx context.Context, table string) error
	// InsertText appends one row and returns its id.
	InsertText(ctx context.Context, table string, row Row) (int64, error)
	// ListTexts returns up to limit rows in insertion order. limit <= 0 means all.
	ListTexts(ctx context.Context, table string, limit int) ([]Row, error)
}

// Row is one stored document.
type Row struct {
	ID   int64
	Date time.Time
	Text string
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTable rejects table names that are not plain SQL identifiers.
// Table names are interpolated into statements, so this is required before use.
func ValidateTable(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("%w: table name %q", internalerr.ErrInvalidInput, table)
	}
	return nil
}

// DateOnly truncates t to its calendar date in UTC, keeping t's own year, month and day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
