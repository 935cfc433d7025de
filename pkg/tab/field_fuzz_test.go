//go:build go1.18
// +build go1.18

package tab_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/shapestone/shape-tab/pkg/tab"
)

// FuzzDecode tests the field decoder with random tokens to find edge cases
// and panics.
// Run with: go test -fuzz=FuzzDecode -fuzztime=30s ./pkg/tab
func FuzzDecode(f *testing.F) {
	// Add seed corpus
	seeds := []string{
		"",
		"hello",
		`""`,
		`"`,
		`"quoted value"`,
		`"tab\there"`,
		`"line\nbreak"`,
		`"esc \" quote"`,
		`"esc \\ slash"`,
		`"unknown \q escape"`,
		`"trailing\`,
		`"unterminated`,
		"raw\tcontrol",
		"\x00\x01\x7f",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, token string) {
		// The decoder should never panic, regardless of input
		got := tab.Decode(token)

		// Control runes are scrubbed before escapes expand, so the only
		// control runes a decoded value can hold are the tab and newline
		// that \t and \n stand for.
		for _, r := range got {
			if r != '\t' && r != '\n' && unicode.Is(unicode.C, r) {
				t.Errorf("Decode(%q) = %q contains control rune %q", token, got, r)
			}
		}
	})
}

// FuzzEncodeRoundTrip checks that encoding a control-free value yields a
// single token that decodes back to the original value.
// Run with: go test -fuzz=FuzzEncodeRoundTrip -fuzztime=30s ./pkg/tab
func FuzzEncodeRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"hello",
		"two words",
		`say "hi"`,
		`back\slash`,
		" leading and trailing ",
		"日本語",
		`"`,
		`""`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, value string) {
		if strings.IndexFunc(value, func(r rune) bool { return unicode.Is(unicode.C, r) }) >= 0 {
			// Decoding scrubs control runes, so only control-free values
			// round-trip exactly.
			t.Skip()
		}

		token := tab.Encode(value)

		fields := tab.SplitFields(token)
		if len(fields) != 1 || fields[0] != token {
			t.Fatalf("Encode(%q) = %q tokenizes as %q, want one whole token", value, token, fields)
		}

		if got := tab.Decode(token); got != value {
			t.Errorf("Decode(Encode(%q)) = %q, want the original value", value, got)
		}
	})
}
