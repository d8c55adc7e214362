package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// OpenHTML reads a saved HTML page (for example a scraped speech) as a one-page source.
func OpenHTML(path string) (*Slice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", internalerr.ErrSourceUnavailable, path, err)
	}
	defer f.Close()
	return ReadHTML(f)
}

// ReadHTML parses r and returns its readable text as a single page.
func ReadHTML(r io.Reader) (*Slice, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %w", internalerr.ErrSourceUnavailable, err)
	}
	return Pages(ExtractText(doc)), nil
}

// ExtractText returns the text of every <p> element, one paragraph per line.
// Documents without paragraphs fall back to all visible text.
func ExtractText(doc *html.Node) string {
	var paras []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			if t := strings.TrimSpace(nodeText(n)); t != "" {
				paras = append(paras, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(paras) == 0 {
		return strings.TrimSpace(nodeText(doc))
	}
	return strings.Join(paras, " \n")
}

// nodeText concatenates the text nodes under n, skipping scripts and styles.
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Head:
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(n)
	return buf.String()
}
