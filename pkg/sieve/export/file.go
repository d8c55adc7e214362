package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/sieve/pkg/sieve/document"
	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// FileName returns the output file name for a source, "Text for <name>.txt".
// A name without a usable base gets "Text for untitled.txt".
func FileName(sourceName string) string {
	base := baseName(sourceName)
	if base == "" {
		base = "untitled"
	}
	return "Text for " + base + ".txt"
}

func baseName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// WriteFile writes one sentence per line to FileName(doc.Name) inside dir and
// returns the path written. Documents without a usable name are written under
// their ID. A failed write may leave a partial file behind; the document
// itself is never modified.
func WriteFile(doc *document.Document, dir string) (string, error) {
	name := doc.Name
	if baseName(name) == "" {
		name = doc.ID
	}
	path := filepath.Join(dir, FileName(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", internalerr.ErrExportWrite, path, err)
	}

	// An empty corpus still produces an empty file.
	sentences, _ := doc.Sentences()

	w := bufio.NewWriter(f)
	for _, s := range sentences {
		if _, err := w.WriteString(s); err != nil {
			f.Close()
			return path, fmt.Errorf("%w: write %s: %w", internalerr.ErrExportWrite, path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return path, fmt.Errorf("%w: write %s: %w", internalerr.ErrExportWrite, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return path, fmt.Errorf("%w: flush %s: %w", internalerr.ErrExportWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("%w: close %s: %w", internalerr.ErrExportWrite, path, err)
	}
	return path, nil
}
