package matcher

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSectionTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Section 1.2", []string{"1.2"}},
		{"Sections 5.5 + 5.6", []string{"5.5", "5.6"}},
		{"1.2, 1.3 and 5.5.1.2.4", []string{"1.2", "1.3", "5.5.1.2.4"}},
		{"see appendix", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := SectionTokens(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SectionTokens(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClip_RuneBoundary(t *testing.T) {
	// "é" is 2 bytes; clipping at an odd byte count must back up to the
	// rune start instead of leaving a dangling continuation byte.
	s := strings.Repeat("é", 10)
	for n := 1; n <= len(s); n++ {
		got := clip(s, n)
		if len(got) > n {
			t.Errorf("clip(%d) returned %d bytes", n, len(got))
		}
		if !utf8.ValidString(got) {
			t.Errorf("clip(%d) split a rune: %q", n, got)
		}
	}
	if got := clip("ascii", 3); got != "asc" {
		t.Errorf("clip ascii = %q, want %q", got, "asc")
	}
}

func TestExcerpt_RuneBoundary(t *testing.T) {
	s := strings.Repeat("ü", 300)
	got := excerpt(s, 501)
	if !utf8.ValidString(got) {
		t.Errorf("excerpt split a rune: %q", got[:8])
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis on clipped excerpt")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapse whitespace", "a  b\n\nc\td", "a b c d"},
		{"strip page footer", "intro Page 3 of 120 outro", "intro  outro"},
		{"trim", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
