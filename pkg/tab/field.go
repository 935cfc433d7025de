// Package tab provides encoding and decoding of tab format, a line-oriented
// tabular text format with space-aligned, human-readable columns.
//
// A table is one record per line. Fields are separated by one or more
// spaces, and a field is either bare or double-quoted with a backslash
// escape for characters that would break the layout. The first line of
// every table is a header that names the columns and fixes their widths.
//
// # Field tokens
//
// Encode and Decode convert between raw string values and field tokens:
//
//	tab.Encode(`he said "hi"`)  // `"he said \"hi\""`
//	tab.Decode(`"a b"`)         // `a b`
//
// # Tables
//
// Format lays out records into fixed-width columns. The transcoders
// (Align, Reformat, FromTree, ToTree, Capture) convert whole tables
// between tab format and other representations.
package tab

import (
	"strings"
	"unicode"

	"github.com/shapestone/shape-tab/internal/tokenizer"
)

// EmptyToken is the quoted empty string token used wherever a record lacks
// a value for a column.
const EmptyToken = `""`

// needsQuoting reports whether a raw value must be rendered as a quoted
// token. Quoting is required when the value contains a double quote, a
// space, or any rune in Unicode category C (control, format, surrogate,
// private use).
func needsQuoting(raw string) bool {
	return strings.IndexFunc(raw, func(r rune) bool {
		return r == '"' || r == ' ' || unicode.Is(unicode.C, r)
	}) >= 0
}

// Encode converts a raw string value into a field token.
//
// Values that need no disambiguation are returned unchanged; they are
// already valid bare tokens. The one exception is the empty string: a bare
// token cannot be empty, so the empty value encodes as EmptyToken rather
// than vanishing from the line. Otherwise the value is wrapped in double
// quotes with tab, newline, double quote, and backslash escaped. All other
// runes pass through unchanged, control runes included: scrubbing control
// runes to '?' is decode-side behavior only, and existing tables depend on
// that asymmetry.
func Encode(raw string) string {
	if raw == "" {
		// A bare token cannot be empty; the empty value is the quoted
		// empty token.
		return EmptyToken
	}
	if !needsQuoting(raw) {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw) + 2)
	sb.WriteByte('"')
	for _, r := range raw {
		switch r {
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Decode converts a field token back into its raw string value.
//
// Every rune in Unicode category C anywhere in the token is first replaced
// by '?'. A token that does not both start and end with a double quote is
// then returned as-is. For quoted tokens the surrounding quotes are
// stripped and escapes expand left to right: \t, \n, \", and \\ produce
// tab, newline, quote, and backslash; a backslash at the end of the
// interior or followed by any other character degrades to a single '?'.
//
// Decode(Encode(s)) == s for every s free of control runes. Values that do
// contain control runes round-trip with those runes destroyed to '?'.
func Decode(token string) string {
	token = scrubControl(token)

	if len(token) < 2 || token[0] != '"' || token[len(token)-1] != '"' {
		return token
	}

	interior := token[1 : len(token)-1]
	var sb strings.Builder
	sb.Grow(len(interior))

	runes := []rune(interior)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' {
			sb.WriteRune(runes[i])
			continue
		}
		if i == len(runes)-1 {
			// Malformed trailing escape.
			sb.WriteByte('?')
			break
		}
		i++
		switch runes[i] {
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		default:
			// Unknown escape; both source characters consumed.
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// scrubControl replaces every category-C rune in s with '?'.
func scrubControl(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return unicode.Is(unicode.C, r) }) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.C, r) {
			return '?'
		}
		return r
	}, s)
}

// SplitFields tokenizes one line into raw field tokens, discarding widths.
// The tokens are not decoded.
func SplitFields(line string) []string {
	return tokenizer.Texts(tokenizer.Scan(line))
}
