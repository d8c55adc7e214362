package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two sentences",
			input: "Hello world. This is a test!",
			want:  []string{"Hello world.", " This is a test!"},
		},
		{
			name:  "no terminator",
			input: "no terminator here",
			want:  []string{"no terminator here"},
		},
		{
			name:  "trailing fragment",
			input: "Done? not yet",
			want:  []string{"Done?", " not yet"},
		},
		{
			name:  "only terminators",
			input: ".!?",
			want:  []string{".", "!", "?"},
		},
		{
			name:  "ellipsis splits per dot",
			input: "Wait...",
			want:  []string{"Wait.", ".", "."},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "newlines kept",
			input: "Line one\ncontinues.\nNext",
			want:  []string{"Line one\ncontinues.", "\nNext"},
		},
		{
			name:  "non-ascii passes through",
			input: "Café au lait. Très bien",
			want:  []string{"Café au lait.", " Très bien"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSegmentLosslessPartition(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"Hello world. This is a test sentence that is long enough to pass the filter!",
		"  leading space. trailing space.  ",
		"What?! Really... yes.",
		"A short clause (with a footnote) ends here.",
		"multi\nline\r\ntext. with\ttabs!",
		"\xff\xfe invalid utf8. still fine",
	}

	for _, in := range inputs {
		candidates := Segment(in)
		if got := strings.Join(candidates, ""); got != in {
			t.Errorf("concatenation of %q = %q, want input back", candidates, got)
		}
		for _, c := range candidates {
			if c == "" {
				t.Errorf("Segment(%q) emitted an empty candidate", in)
			}
		}
	}
}

func TestSegmentTerminatorEndsEveryCandidateButLast(t *testing.T) {
	candidates := Segment("One. Two! Three? four")
	if len(candidates) != 4 {
		t.Fatalf("expected 4 candidates, got %d: %q", len(candidates), candidates)
	}
	for _, c := range candidates[:3] {
		if !isTerminator(c[len(c)-1]) {
			t.Errorf("candidate %q should end with a terminator", c)
		}
	}
	if candidates[3] != " four" {
		t.Errorf("expected unterminated tail %q, got %q", " four", candidates[3])
	}
}

func TestEachMatchesSegment(t *testing.T) {
	input := "First. Second! Third? tail"

	var fromEach []string
	Each(input, func(c string) {
		fromEach = append(fromEach, c)
	})

	if !reflect.DeepEqual(fromEach, Segment(input)) {
		t.Errorf("Each produced %q, Segment produced %q", fromEach, Segment(input))
	}
}

func TestSegmentVeryLongText(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10000; i++ {
		sb.WriteString("This is sentence number whatever. ")
	}
	candidates := Segment(sb.String())

	// 10000 terminated sentences plus the trailing space fragment
	if len(candidates) != 10001 {
		t.Errorf("expected 10001 candidates, got %d", len(candidates))
	}
}
