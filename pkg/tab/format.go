package tab

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shapestone/shape-tab/internal/tokenizer"
)

// Format holds the column layout of one table: an ordered sequence of
// header labels and the minimum on-screen width reserved for each column.
//
// A Format is built once from a header line, optionally widened by records
// via Adjust, and never shrinks. It is owned by a single conversion and is
// not safe for concurrent use.
type Format struct {
	labels []string
	widths []int
}

// NewFormat builds a Format by tokenizing a header line.
//
// The tokens become the column labels and the widths they occupied in the
// source line become the initial column widths. Every width is clamped to
// at least the label's own width plus one, so each column always reserves
// a separating space relative to its label; without the clamp the last
// column, which has no trailing spaces before end of line, would start one
// cell short.
func NewFormat(header string) *Format {
	fields := tokenizer.Scan(header)
	f := &Format{
		labels: make([]string, len(fields)),
		widths: make([]int, len(fields)),
	}
	for i, fld := range fields {
		f.labels[i] = fld.Text
		f.widths[i] = fld.Width
		if min := runewidth.StringWidth(fld.Text) + 1; f.widths[i] < min {
			f.widths[i] = min
		}
	}
	return f
}

// Labels returns the header labels, undecoded, in column order.
func (f *Format) Labels() []string {
	labels := make([]string, len(f.labels))
	copy(labels, f.labels)
	return labels
}

// Widths returns the current column widths in column order.
func (f *Format) Widths() []int {
	widths := make([]int, len(f.widths))
	copy(widths, f.widths)
	return widths
}

// Columns returns the number of columns, fixed at construction.
func (f *Format) Columns() int {
	return len(f.labels)
}

// Adjust widens columns so that record fits: each column's width grows to
// the field's width plus one separating space if the field is wider than
// the column. Widths never decrease. Fields beyond the header's column
// count are ignored.
func (f *Format) Adjust(record []string) {
	for i, field := range record {
		if i >= len(f.widths) {
			break
		}
		if w := runewidth.StringWidth(field) + 1; w > f.widths[i] {
			f.widths[i] = w
		}
	}
}

// Render lays record out into the Format's columns and returns the line,
// newline terminated. A nil record renders the header labels.
//
// Each field that fits its column (field width plus one separating space
// within the reserved width) is padded with spaces to exactly the column
// width. The first field that does not fit breaks the row: it and every
// field after it are emitted with a single separating space, ignoring the
// configured widths. A too-long field therefore cannot desynchronize the
// columns of any other row; alignment resumes on the next line.
func (f *Format) Render(record []string) string {
	if record == nil {
		record = f.labels
	}

	var sb strings.Builder
	broken := false
	for i, field := range record {
		w := runewidth.StringWidth(field)
		if !broken && (i >= len(f.widths) || w+1 > f.widths[i]) {
			broken = true
		}
		sb.WriteString(field)
		if broken {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(strings.Repeat(" ", f.widths[i]-w))
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
