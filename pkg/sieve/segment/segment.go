package segment

// isTerminator reports whether b ends a candidate sentence.
// All terminators are single-byte ASCII, so scanning bytes is safe for UTF-8 input.
func isTerminator(b byte) bool {
	switch b {
	case '.', '!', '?':
		return true
	}
	return false
}

// Each scans raw left to right and calls fn for every candidate sentence in order
// of appearance. A candidate runs up to and including a terminator; a trailing
// unterminated fragment is emitted last. Empty candidates are never emitted.
//
// Candidates are substrings of raw, so concatenating them reproduces raw exactly.
func Each(raw string, fn func(candidate string)) {
	start := 0
	for i := 0; i < len(raw); i++ {
		if isTerminator(raw[i]) {
			fn(raw[start : i+1])
			start = i + 1
		}
	}

	// Don't forget the unterminated tail
	if start < len(raw) {
		fn(raw[start:])
	}
}

// Segment splits raw into candidate sentences. See Each.
func Segment(raw string) []string {
	var candidates []string
	Each(raw, func(c string) {
		candidates = append(candidates, c)
	})
	return candidates
}
