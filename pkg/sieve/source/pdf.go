package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// PDF yields the plain text of each page of a PDF file.
type PDF struct {
	path string
	f    *os.File
	r    *pdf.Reader
	next int // 1-based

	pageErrs []error
}

// OpenPDF opens a PDF file for page-by-page reading. Call Close when done.
func OpenPDF(path string) (*PDF, error) {
	f, r, err := openPDF(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf %s: %w", internalerr.ErrSourceUnavailable, path, err)
	}
	return &PDF{path: path, f: f, r: r, next: 1}, nil
}

// openPDF guards against the reader panicking on malformed files.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f != nil {
				f.Close()
			}
			f, r, err = nil, nil, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	return pdf.Open(path)
}

// NumPage returns the number of pages in the file.
func (p *PDF) NumPage() int {
	if p.r == nil {
		return 0
	}
	return p.r.NumPage()
}

// Next implements ingest.PageSource. Pages that are missing or cannot be
// decoded come back as empty text so the pipeline counts and skips them.
func (p *PDF) Next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if p.r == nil || p.next > p.r.NumPage() {
		return "", false, nil
	}
	i := p.next
	p.next++

	text, err := pageText(p.r.Page(i))
	if err != nil {
		p.pageErrs = append(p.pageErrs, fmt.Errorf("%s page %d: %w", p.path, i, err))
		return "", true, nil
	}
	return text, true, nil
}

func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("decode page: %v", rec)
		}
	}()
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// PageErrors implements ingest.PageErrorer. Each entry is a page that came
// back empty because it could not be decoded.
func (p *PDF) PageErrors() []error {
	return p.pageErrs
}

// Close releases the underlying file.
func (p *PDF) Close() error {
	if p.f == nil {
		return nil
	}
	err := p.f.Close()
	p.f = nil
	p.r = nil
	return err
}
