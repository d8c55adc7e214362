package source

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cognicore/sieve/pkg/sieve/ingest"
)

// Source is a page source that holds resources until closed.
type Source interface {
	ingest.PageSource
	io.Closer
}

var (
	_ Source             = (*Slice)(nil)
	_ Source             = (*PDF)(nil)
	_ ingest.PageErrorer = (*PDF)(nil)
)

// Open picks a source for path by its extension: .pdf, .html/.htm, or plain text.
// Failures wrap internalerr.ErrSourceUnavailable.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return asSource(OpenPDF(path))
	case ".html", ".htm":
		return asSource(OpenHTML(path))
	default:
		return asSource(OpenText(path))
	}
}

// asSource avoids wrapping a nil pointer in a non-nil interface.
func asSource[S Source](s S, err error) (Source, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
