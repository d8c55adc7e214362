package source

import "context"

// Slice is an in-memory page source.
type Slice struct {
	pages []string
	next  int
}

// Pages returns a source that yields the given pages in order.
func Pages(pages ...string) *Slice {
	return &Slice{pages: pages}
}

// Next implements ingest.PageSource.
func (s *Slice) Next(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if s.next >= len(s.pages) {
		return "", false, nil
	}
	page := s.pages[s.next]
	s.next++
	return page, true, nil
}

// Len returns the total number of pages.
func (s *Slice) Len() int {
	return len(s.pages)
}

// Close implements io.Closer.
func (s *Slice) Close() error { return nil }
