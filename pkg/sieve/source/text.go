package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// pageBreak separates pages in plain-text dumps (pdftotext output).
const pageBreak = "\f"

// OpenText reads a plain-text file. Form feeds split it into pages.
func OpenText(path string) (*Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", internalerr.ErrSourceUnavailable, path, err)
	}
	return Pages(SplitPages(string(data))...), nil
}

// ReadText reads all of r as a plain-text source.
func ReadText(r io.Reader) (*Slice, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrSourceUnavailable, err)
	}
	return Pages(SplitPages(string(data))...), nil
}

// SplitPages splits text on form feeds. The empty piece after a final
// form feed is dropped since pdftotext terminates every page with one.
func SplitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, pageBreak)
	if len(pages) > 1 && pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
