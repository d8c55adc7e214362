package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/sieve/pkg/sieve/internalerr"
)

// cutset is the whitespace trimmed from both ends of a candidate.
const cutset = " \t\n\r"

// Reason explains the outcome of Accept.
type Reason int

const (
	Accepted Reason = iota
	Empty
	NonASCII
	TooShort
	Parens
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Empty:
		return "empty"
	case NonASCII:
		return "non-ascii"
	case TooShort:
		return "too-short"
	case Parens:
		return "parens"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Config controls which candidates survive the chain.
// MinChars has no default; callers pick it for their source granularity
// (30 suits extracted PDF sentences, 10-15 suits short scraped utterances).
type Config struct {
	MinChars      int
	ASCIIOnly     bool
	ExcludeParens bool
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.MinChars < 0 {
		return fmt.Errorf("%w: min_chars must be >= 0, got %d", internalerr.ErrInvalidConfig, c.MinChars)
	}
	return nil
}

// Chain applies the acceptance rules to candidate sentences.
// A Chain is immutable and safe for concurrent use.
type Chain struct {
	cfg Config
}

// New creates a filter chain for the given configuration.
func New(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chain{cfg: cfg}, nil
}

// Config returns the configuration the chain was built with.
func (c *Chain) Config() Config {
	return c.cfg
}

// Accept runs candidate through the chain and returns the cleaned sentence.
// Steps run in order and stop at the first rejection:
//
//  1. trim surrounding whitespace
//  2. reject code points above 127 (ASCIIOnly)
//  3. reject fewer than MinChars characters
//  4. reject '(' or ')' (ExcludeParens)
//  5. drop embedded line breaks
//
// Rejection is ordinary control flow: the returned sentence is empty and the
// Reason says which step fired.
func (c *Chain) Accept(candidate string) (string, Reason) {
	// Step 1: Trim
	s := strings.Trim(candidate, cutset)
	if s == "" {
		return "", Empty
	}

	// Step 2: Character set
	if c.cfg.ASCIIOnly && !isASCII(s) {
		return "", NonASCII
	}

	// Step 3: Length. Line breaks are not counted since step 5 removes them.
	if charCount(s) < c.cfg.MinChars {
		return "", TooShort
	}

	// Step 4: Structural exclusion (citations, footnotes)
	if c.cfg.ExcludeParens && strings.ContainsAny(s, "()") {
		return "", Parens
	}

	// Step 5: Newline normalization
	return stripLineBreaks(s), Accepted
}

// isASCII returns true if every byte is 7-bit. Invalid UTF-8 counts as non-ASCII.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// charCount returns the number of characters in s, excluding line breaks.
func charCount(s string) int {
	return utf8.RuneCountInString(s) - strings.Count(s, "\n") - strings.Count(s, "\r")
}

func stripLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return lineBreaks.Replace(s)
}

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")
