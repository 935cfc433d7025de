package tab_test

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-tab/pkg/tab"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare token unchanged",
			raw:  "hello",
			want: "hello",
		},
		{
			name: "empty string quotes",
			raw:  "",
			want: `""`,
		},
		{
			name: "space forces quoting",
			raw:  "a b",
			want: `"a b"`,
		},
		{
			name: "double quote escapes",
			raw:  `he said "hi"`,
			want: `"he said \"hi\""`,
		},
		{
			name: "backslash escapes",
			raw:  `a\b`,
			want: `a\b`,
		},
		{
			name: "backslash with space escapes inside quotes",
			raw:  `a \ b`,
			want: `"a \\ b"`,
		},
		{
			name: "tab escapes",
			raw:  "a\tb",
			want: `"a\tb"`,
		},
		{
			name: "newline escapes",
			raw:  "a\nb",
			want: `"a\nb"`,
		},
		{
			name: "control rune passes through raw",
			raw:  "a\x01b",
			want: "\"a\x01b\"",
		},
		{
			name: "punctuation stays bare",
			raw:  "/usr/bin:1,2;3",
			want: "/usr/bin:1,2;3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tab.Encode(tt.raw); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestEncodeQuotesOnlyWhenNeeded checks the exact quoting condition:
// a field is quoted iff it contains a double quote, a space, or a
// control character.
func TestEncodeQuotesOnlyWhenNeeded(t *testing.T) {
	quoted := []string{" ", `"`, "\t", "\n", "\x7f", "a b", ""}
	bare := []string{"x", "x'y", "a,b", "日本", "-", "=[]{}"}

	for _, raw := range quoted {
		if raw != "" && !strings.HasPrefix(tab.Encode(raw), `"`) {
			t.Errorf("Encode(%q) should quote", raw)
		}
	}
	// The empty string contains none of the trigger characters but must
	// still render as a token; it is the quoted empty token.
	if tab.Encode("") != `""` {
		t.Errorf("Encode(\"\") = %q, want %q", tab.Encode(""), `""`)
	}
	for _, raw := range bare {
		if got := tab.Encode(raw); got != raw {
			t.Errorf("Encode(%q) = %q, want unchanged", raw, got)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{
			name:  "bare token unchanged",
			token: "hello",
			want:  "hello",
		},
		{
			name:  "quoted token unwraps",
			token: `"a b"`,
			want:  "a b",
		},
		{
			name:  "escape table expands",
			token: `"a\tb\nc\"d\\e"`,
			want:  "a\tb\nc\"d\\e",
		},
		{
			name:  "unknown escape degrades to question mark",
			token: `"a\xb"`,
			want:  "a?b",
		},
		{
			name:  "trailing backslash degrades",
			token: `"ab\"`,
			want:  "ab?",
		},
		{
			name:  "control runes scrubbed in bare token",
			token: "a\x01b",
			want:  "a?b",
		},
		{
			name:  "control runes scrubbed inside quotes",
			token: "\"a\x01b\"",
			want:  "a?b",
		},
		{
			name:  "lone quote is not a quoted token",
			token: `"`,
			want:  `"`,
		},
		{
			name:  "quoted empty token",
			token: `""`,
			want:  "",
		},
		{
			name:  "quote only at start unchanged",
			token: `"ab`,
			want:  `"ab`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tab.Decode(tt.token); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

// TestRoundTrip verifies Decode(Encode(s)) == s for control-free inputs.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"a b c",
		`he said "hi"`,
		`back\slash`,
		`mix "of \ it all`,
		"日本語 text",
		strings.Repeat("x ", 100),
	}
	for _, s := range inputs {
		if got := tab.Decode(tab.Encode(s)); got != s {
			t.Errorf("Decode(Encode(%q)) = %q, want input back", s, got)
		}
	}
}

// TestRoundTripControlRunes verifies the documented destruction: every
// control rune comes back as '?' at its position, everything else intact.
func TestRoundTripControlRunes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\x01b", "a?b"},
		{"\x00", "?"},
		{"x\x1fy\x7fz", "x?y?z"},
	}
	for _, tt := range tests {
		if got := tab.Decode(tab.Encode(tt.in)); got != tt.want {
			t.Errorf("Decode(Encode(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}
	// Tab and newline are control runes too, but they have escapes and so
	// survive the round trip.
	if got := tab.Decode(tab.Encode("a\tb\nc")); got != "a\tb\nc" {
		t.Errorf("escaped control runes should round-trip, got %q", got)
	}
}

func TestSplitFields(t *testing.T) {
	got := tab.SplitFields(`NAME  "full name"  AGE`)
	want := []string{"NAME", `"full name"`, "AGE"}
	if len(got) != len(want) {
		t.Fatalf("SplitFields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitFields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
