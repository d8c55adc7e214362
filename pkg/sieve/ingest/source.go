package ingest

import "context"

// PageSource yields the raw text of a document one page at a time.
// Sources are finite and consumed exactly once; ok is false once exhausted.
type PageSource interface {
	Next(ctx context.Context) (page string, ok bool, err error)
}

// PageErrorer is implemented by sources that substitute empty text for pages
// they cannot decode. The pipeline copies these errors to Document.Warnings.
type PageErrorer interface {
	PageErrors() []error
}
