package document

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/sieve/pkg/sieve/filter"
	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// separator joins accepted sentences in the concatenated text.
const separator = " "

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// newID stamps IDs with the wall clock. Document dates may predate the Unix
// epoch, which ULID cannot encode.
func newID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// Stats summarizes one ingestion run.
type Stats struct {
	EmptyPages int
	Candidates int
	Accepted   int
	Empty      int
	NonASCII   int
	TooShort   int
	Parens     int
}

// Rejected returns the total number of rejected candidates.
func (s Stats) Rejected() int {
	return s.Empty + s.NonASCII + s.TooShort + s.Parens
}

// Reject counts a rejected candidate under its reason.
func (s *Stats) Reject(r filter.Reason) {
	switch r {
	case filter.Empty:
		s.Empty++
	case filter.NonASCII:
		s.NonASCII++
	case filter.TooShort:
		s.TooShort++
	case filter.Parens:
		s.Parens++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("candidates=%d accepted=%d rejected=%d (empty=%d non-ascii=%d too-short=%d parens=%d) empty-pages=%d",
		s.Candidates, s.Accepted, s.Rejected(), s.Empty, s.NonASCII, s.TooShort, s.Parens, s.EmptyPages)
}

// Document holds the sentences accepted from one source, in order of appearance.
// It is built by a single ingest.Pipeline run and is read-only afterwards.
type Document struct {
	ID        string
	Name      string
	CreatedAt time.Time
	PageCount int
	Stats     Stats
	// Warnings lists pages the source could not decode and replaced with empty text.
	Warnings  []error

	sentences []string
}

// New creates an empty document. now is the document date used for store export.
func New(name string, now time.Time) *Document {
	return &Document{
		ID:        newID(),
		Name:      name,
		CreatedAt: now,
	}
}

// Add appends an accepted sentence. Only the ingestion pipeline calls this.
func (d *Document) Add(sentence string) {
	d.sentences = append(d.sentences, sentence)
	d.Stats.Accepted++
}

// Finish records the number of pages observed. Only the ingestion pipeline calls this.
func (d *Document) Finish(pages int) {
	d.PageCount = pages
}

// Count returns the number of accepted sentences.
func (d *Document) Count() int {
	return len(d.sentences)
}

// Empty reports whether no sentence was accepted.
func (d *Document) Empty() bool {
	return len(d.sentences) == 0
}

// Sentences returns a copy of the accepted sentences.
// With nothing accepted it returns an empty slice and ErrEmptyCorpus,
// which is informational; the document is still valid.
func (d *Document) Sentences() ([]string, error) {
	if d.Empty() {
		return []string{}, internalerr.ErrEmptyCorpus
	}
	out := make([]string, len(d.sentences))
	copy(out, d.sentences)
	return out, nil
}

// Text returns the accepted sentences joined by a single space.
// With nothing accepted it returns "" and ErrEmptyCorpus.
func (d *Document) Text() (string, error) {
	if d.Empty() {
		return "", internalerr.ErrEmptyCorpus
	}
	return strings.Join(d.sentences, separator), nil
}

// Date returns the calendar date of the document in its own location.
func (d *Document) Date() time.Time {
	y, m, day := d.CreatedAt.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.CreatedAt.Location())
}
