package embedding

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateUTF8(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit unchanged", "hello", 10, "hello"},
		{"exact limit unchanged", "hello", 5, "hello"},
		{"ascii cut at limit", "hello", 3, "hel"},
		{"two-byte rune not split", strings.Repeat("é", 10), 11, strings.Repeat("é", 5)},
		{"four-byte rune not split", "\U0001f642\U0001f642", 6, "\U0001f642"},
		{"zero keeps nothing", "abc", 0, ""},
	}

	for _, tc := range cases {
		got := truncateUTF8(tc.in, tc.max)
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
		if len(got) > tc.max {
			t.Fatalf("%s: result exceeds %d bytes", tc.name, tc.max)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("%s: truncation produced invalid UTF-8", tc.name)
		}
	}
}
