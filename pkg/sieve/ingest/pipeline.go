package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cognicore/sieve/pkg/sieve/document"
	"github.com/cognicore/sieve/pkg/sieve/filter"
	"github.com/cognicore/sieve/pkg/sieve/internalerr"
	"github.com/cognicore/sieve/pkg/sieve/segment"
)

// Pipeline orchestrates the full ingestion flow:
// page text → segmentation → filter chain → document
type Pipeline struct {
	chain *filter.Chain
	now   func() time.Time
}

// NewPipeline creates an ingestion pipeline around the given filter chain
func NewPipeline(chain *filter.Chain) *Pipeline {
	return &Pipeline{
		chain: chain,
		now:   time.Now,
	}
}

// SetClock replaces the clock used to date documents.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Ingest consumes every page of src and returns the document built from it,
// dated now.
func (p *Pipeline) Ingest(ctx context.Context, name string, src PageSource) (*document.Document, error) {
	return p.IngestAt(ctx, name, p.now(), src)
}

// IngestAt is Ingest with an explicit document date.
//
// Pages are processed in order and sentences keep their order of appearance.
// Blank pages are skipped but still counted. If the source cannot produce a
// page the whole run fails with ErrSourceUnavailable and no document is returned.
func (p *Pipeline) IngestAt(ctx context.Context, name string, date time.Time, src PageSource) (*document.Document, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: %s: no page source", internalerr.ErrSourceUnavailable, name)
	}

	doc := document.New(name, date)
	pages := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, ok, err := src.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %w", internalerr.ErrSourceUnavailable, name, pages+1, err)
		}
		if !ok {
			break
		}
		pages++
		p.processPage(doc, page)
	}
	doc.Finish(pages)

	if pe, ok := src.(PageErrorer); ok {
		doc.Warnings = pe.PageErrors()
	}
	return doc, nil
}

// IngestText runs a single blob of raw text through the pipeline, such as the
// body of a scraped speech. The result counts as one page.
func (p *Pipeline) IngestText(name string, date time.Time, raw string) *document.Document {
	doc := document.New(name, date)
	p.processPage(doc, raw)
	doc.Finish(1)
	return doc
}

// processPage segments one page and appends the accepted sentences to doc.
func (p *Pipeline) processPage(doc *document.Document, page string) {
	if strings.TrimSpace(page) == "" {
		doc.Stats.EmptyPages++
		return
	}

	segment.Each(page, func(candidate string) {
		doc.Stats.Candidates++
		sentence, reason := p.chain.Accept(candidate)
		if reason != filter.Accepted {
			doc.Stats.Reject(reason)
			return
		}
		doc.Add(sentence)
	})
}
