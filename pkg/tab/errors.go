// Package tab error types and diagnostic callbacks.
//
// The codec itself never fails on malformed field text: unterminated
// quotes, trailing backslashes, and unknown escapes all degrade locally to
// '?' substitution or truncated-field acceptance. Errors surface only at
// the edges, from upstream document parsers and from struct mapping.
package tab

import "errors"

// Struct mapping errors.
var (
	// ErrNotSlice is returned by Marshal when the value is not a slice.
	ErrNotSlice = errors.New("tab: Marshal expects a slice of structs")

	// ErrNotPointer is returned by Unmarshal when the target is not a
	// non-nil pointer to a slice of structs.
	ErrNotPointer = errors.New("tab: Unmarshal expects a non-nil pointer to a slice of structs")
)

// DroppedLineHandler is a callback invoked when Capture drops an input
// line that did not match the pattern. It receives the 1-indexed line
// number and the raw line content.
type DroppedLineHandler func(line int, content string)
