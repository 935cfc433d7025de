package tab

import (
	"bufio"
	"io"
	"regexp"
)

// CaptureOption configures a Capture run.
type CaptureOption func(*captureConfig)

type captureConfig struct {
	onDropped DroppedLineHandler
}

// WithDroppedLineHandler installs a callback invoked for every input line
// that does not match the pattern. Dropped lines produce no output either
// way; the callback exists for diagnostics only.
func WithDroppedLineHandler(h DroppedLineHandler) CaptureOption {
	return func(c *captureConfig) {
		c.onDropped = h
	}
}

// Capture converts raw text lines from an external source into a table.
//
// Each input line is matched against pattern. The capture groups of a
// matching line are field-encoded positionally into the columns of the
// fixed header; a non-matching line is dropped silently. Capture streams,
// rendering each record against the header's own widths as it arrives.
func Capture(r io.Reader, pattern *regexp.Regexp, header string, w io.Writer, opts ...CaptureOption) error {
	var cfg captureConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	format := NewFormat(header)

	if _, err := io.WriteString(w, format.Render(nil)); err != nil {
		return err
	}

	lines := bufio.NewScanner(r)
	lineNum := 0
	for lines.Scan() {
		lineNum++
		m := pattern.FindStringSubmatch(lines.Text())
		if m == nil {
			if cfg.onDropped != nil {
				cfg.onDropped(lineNum, lines.Text())
			}
			continue
		}
		record := make([]string, len(m)-1)
		for i, group := range m[1:] {
			record[i] = Encode(group)
		}
		if _, err := io.WriteString(w, format.Render(record)); err != nil {
			return err
		}
	}
	return lines.Err()
}
