package document

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/sieve/pkg/sieve/filter"
	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

func TestDocumentAccumulatesInOrder(t *testing.T) {
	doc := New("speech.pdf", time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC))
	doc.Add("First sentence here.")
	doc.Add("Second sentence here!")
	doc.Add("Third sentence here?")
	doc.Finish(2)

	sentences, err := doc.Sentences()
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}
	want := []string{"First sentence here.", "Second sentence here!", "Third sentence here?"}
	if len(sentences) != len(want) {
		t.Fatalf("expected %d sentences, got %d", len(want), len(sentences))
	}
	for i := range want {
		if sentences[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, sentences[i], want[i])
		}
	}

	text, err := doc.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != strings.Join(want, " ") {
		t.Errorf("Text() = %q, want %q", text, strings.Join(want, " "))
	}

	if doc.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", doc.PageCount)
	}
	if doc.Count() != doc.Stats.Accepted {
		t.Errorf("Count() = %d but Stats.Accepted = %d", doc.Count(), doc.Stats.Accepted)
	}
}

func TestDocumentEmptyCorpus(t *testing.T) {
	doc := New("empty.txt", time.Now())

	sentences, err := doc.Sentences()
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("Sentences() error = %v, want ErrEmptyCorpus", err)
	}
	if sentences == nil || len(sentences) != 0 {
		t.Errorf("Sentences() = %#v, want empty non-nil slice", sentences)
	}

	text, err := doc.Text()
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Errorf("Text() error = %v, want ErrEmptyCorpus", err)
	}
	if text != "" {
		t.Errorf("Text() = %q, want empty", text)
	}

	if !doc.Empty() {
		t.Error("Empty() should be true")
	}
}

func TestSentencesReturnsCopy(t *testing.T) {
	doc := New("a", time.Now())
	doc.Add("Original sentence.")

	got, _ := doc.Sentences()
	got[0] = "mutated"

	again, _ := doc.Sentences()
	if again[0] != "Original sentence." {
		t.Errorf("caller mutation leaked into document: %q", again[0])
	}
}

func TestDocumentDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	doc := New("a", time.Date(2024, 12, 31, 23, 30, 0, 0, loc))

	got := doc.Date()
	if got.Year() != 2024 || got.Month() != time.December || got.Day() != 31 {
		t.Errorf("Date() = %v, want 2024-12-31", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("Date() should drop the time of day, got %v", got)
	}
}

func TestDocumentIDsAreUniqueAndOrdered(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 100; i++ {
		id := New("doc", now).ID
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID %s", id)
		}
		if prev != "" && id <= prev {
			t.Errorf("IDs should be monotonic: %s after %s", id, prev)
		}
		seen[id] = struct{}{}
		prev = id
	}
}

func TestDocumentDatesBeforeEpoch(t *testing.T) {
	dates := map[string]time.Time{
		"1965 archive speech": time.Date(1965, 6, 1, 0, 0, 0, 0, time.UTC),
		"zero time":           {},
	}
	for name, date := range dates {
		t.Run(name, func(t *testing.T) {
			doc := New("old", date)
			if len(doc.ID) != 26 {
				t.Errorf("expected 26-char ULID, got %q", doc.ID)
			}
			if !doc.CreatedAt.Equal(date) {
				t.Errorf("CreatedAt = %v, want %v", doc.CreatedAt, date)
			}
			y, m, d := date.Date()
			if gy, gm, gd := doc.Date().Date(); gy != y || gm != m || gd != d {
				t.Errorf("Date() = %v, want %04d-%02d-%02d", doc.Date(), y, m, d)
			}
		})
	}
}

func TestStatsReject(t *testing.T) {
	var s Stats
	s.Reject(filter.Empty)
	s.Reject(filter.NonASCII)
	s.Reject(filter.TooShort)
	s.Reject(filter.TooShort)
	s.Reject(filter.Parens)
	s.Reject(filter.Accepted) // not a rejection

	if s.Rejected() != 5 {
		t.Errorf("Rejected() = %d, want 5", s.Rejected())
	}
	if s.TooShort != 2 {
		t.Errorf("TooShort = %d, want 2", s.TooShort)
	}
	if !strings.Contains(s.String(), "too-short=2") {
		t.Errorf("String() = %q, missing too-short count", s.String())
	}
}
