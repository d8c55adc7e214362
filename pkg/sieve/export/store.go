package export

import (
	"context"
	"fmt"

	"github.com/cognicore/sieve/pkg/sieve/document"
	"github.com/cognicore/sieve/pkg/sieve/internalerr"
	"github.com/cognicore/sieve/pkg/sieve/store"
)

// WriteStore creates table if needed and inserts one row holding the
// document date and its concatenated text. It returns the new row id.
// Failures wrap ErrExportWrite and leave the document untouched, so the
// export can be retried or sent elsewhere.
func WriteStore(ctx context.Context, st store.Store, table string, doc *document.Document) (int64, error) {
	if st == nil {
		return 0, fmt.Errorf("%w: no store configured", internalerr.ErrInvalidConfig)
	}
	if table == "" {
		table = store.DefaultTable
	}
	if err := store.ValidateTable(table); err != nil {
		return 0, err
	}

	// An empty corpus still records a row, matching the file export.
	text, _ := doc.Text()

	if err := st.EnsureTable(ctx, table); err != nil {
		return 0, fmt.Errorf("%w: %w", internalerr.ErrExportWrite, err)
	}
	id, err := st.InsertText(ctx, table, store.Row{Date: doc.Date(), Text: text})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", internalerr.ErrExportWrite, err)
	}
	return id, nil
}
