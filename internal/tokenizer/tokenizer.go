// Package tokenizer splits one line of tab-format text into fields.
//
// Tab format tokenization works at the character level because field
// content depends on context (inside or outside quotes). The scan is a
// single left-to-right pass driven by an explicit state machine:
//
//  1. trailing - between fields, consuming the run of separating spaces
//  2. unquoted - inside a bare field
//  3. quoted   - inside a quoted field, before any escape
//  4. escape   - one character after a backslash inside a quoted field
//
// Alongside each field the scanner reports the on-screen width the field
// consumed, including the trailing padding up to the start of the next
// field. Widths are measured in terminal cells so that wide runes keep
// columns visually aligned.
package tokenizer

import (
	"github.com/mattn/go-runewidth"
)

// Field is one raw field token scanned from a line, together with the
// on-screen width it occupied in the source line.
//
// Text is the token exactly as it appeared, quotes and escapes included.
// The scanner is escape-aware but never decodes; expanding escapes is the
// field codec's job.
type Field struct {
	Text  string
	Width int
}

// state is the scanner state. See the package comment for the transitions.
type state int

const (
	stateTrailing state = iota
	stateUnquoted
	stateQuoted
	stateEscape
)

// Scan tokenizes a single line into its fields.
//
// The line must not contain a newline; callers split the input into lines
// first. Malformed input never fails: an unterminated quoted field is
// emitted with whatever text and width accumulated, and a closing quote
// followed directly by more text simply starts the next field under the
// normal trailing-state transition.
func Scan(line string) []Field {
	var (
		fields  []Field
		text    []rune
		width   int
		current = stateTrailing
	)

	// emit closes off the pending field, if one accumulated.
	emit := func() {
		if len(text) > 0 {
			fields = append(fields, Field{Text: string(text), Width: width})
			text = text[:0]
		}
	}

	for _, r := range line {
		switch current {
		case stateTrailing:
			if r == ' ' {
				width++
				continue
			}
			emit()
			text = append(text, r)
			width = runewidth.RuneWidth(r)
			if r == '"' {
				current = stateQuoted
			} else {
				current = stateUnquoted
			}

		case stateUnquoted:
			if r == ' ' {
				// The space counts toward this field's width but is
				// not part of its text.
				width++
				current = stateTrailing
				continue
			}
			text = append(text, r)
			width += runewidth.RuneWidth(r)

		case stateQuoted:
			text = append(text, r)
			width += runewidth.RuneWidth(r)
			switch r {
			case '\\':
				current = stateEscape
			case '"':
				// The field closes at the closing quote, not at the
				// next space.
				current = stateTrailing
			}

		case stateEscape:
			// No validation here: any character is accepted after a
			// backslash. Unknown-escape handling happens at decode time.
			text = append(text, r)
			width += runewidth.RuneWidth(r)
			current = stateQuoted
		}
	}

	emit()
	return fields
}

// Texts returns just the token texts of fields, in order.
func Texts(fields []Field) []string {
	texts := make([]string, len(fields))
	for i, f := range fields {
		texts[i] = f.Text
	}
	return texts
}
