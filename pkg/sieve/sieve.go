package sieve

import (
	"context"
	"time"

	"github.com/cognicore/sieve/pkg/sieve/document"
	"github.com/cognicore/sieve/pkg/sieve/export"
	"github.com/cognicore/sieve/pkg/sieve/filter"
	"github.com/cognicore/sieve/pkg/sieve/ingest"
	"github.com/cognicore/sieve/pkg/sieve/source"
	"github.com/cognicore/sieve/pkg/sieve/store"
)

// Sieve is the main sentence extraction facade
type Sieve struct {
	pipeline *ingest.Pipeline
	store    store.Store
	table    string
	outDir   string
	open     func(path string) (source.Source, error)
}

// Options configures a Sieve instance
type Options struct {
	Filter filter.Config
	// Store is optional; WriteStore fails without it.
	Store store.Store
	Table string
	// OutDir is where WriteFile puts sentence files. Defaults to the working directory.
	OutDir string
	// Clock dates documents. Defaults to time.Now.
	Clock func() time.Time
	// Open opens page sources. Defaults to source.Open.
	Open func(path string) (source.Source, error)
}

// New creates a Sieve instance with the given dependencies
func New(opts Options) (*Sieve, error) {
	chain, err := filter.New(opts.Filter)
	if err != nil {
		return nil, err
	}

	pipeline := ingest.NewPipeline(chain)
	if opts.Clock != nil {
		pipeline.SetClock(opts.Clock)
	}

	s := &Sieve{
		pipeline: pipeline,
		store:    opts.Store,
		table:    opts.Table,
		outDir:   opts.OutDir,
		open:     opts.Open,
	}
	if s.table == "" {
		s.table = store.DefaultTable
	}
	if s.outDir == "" {
		s.outDir = "."
	}
	if s.open == nil {
		s.open = source.Open
	}
	return s, nil
}

// Close cleanly shuts down the store, if any
func (s *Sieve) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// Extract opens path and builds a document from its pages.
// An unreadable source fails with ErrSourceUnavailable.
func (s *Sieve) Extract(ctx context.Context, path string) (*document.Document, error) {
	src, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return s.pipeline.Ingest(ctx, path, src)
}

// Clean builds a document from one blob of raw text, such as a scraped speech.
func (s *Sieve) Clean(name string, date time.Time, raw string) *document.Document {
	return s.pipeline.IngestText(name, date, raw)
}

// WriteFile exports the document's sentences, one per line.
func (s *Sieve) WriteFile(doc *document.Document) (string, error) {
	return export.WriteFile(doc, s.outDir)
}

// Table returns the table WriteStore inserts into.
func (s *Sieve) Table() string {
	return s.table
}

// WriteStore exports the document's date and text as one row.
func (s *Sieve) WriteStore(ctx context.Context, doc *document.Document) (int64, error) {
	return export.WriteStore(ctx, s.store, s.table, doc)
}
