package tab

import (
	"bufio"
	"io"

	"github.com/shapestone/shape-tab/internal/tokenizer"
)

// Align reads a whole table from r and writes it back to w with every
// column widened to fit its largest value.
//
// The first line is the header. Because column widths depend on every
// record, the table is buffered in memory and no output is produced until
// the input is exhausted. An empty input produces no output.
func Align(r io.Reader, w io.Writer) error {
	lines := bufio.NewScanner(r)
	if !lines.Scan() {
		return lines.Err()
	}

	format := NewFormat(lines.Text())

	var records [][]string
	for lines.Scan() {
		record := tokenizer.Texts(tokenizer.Scan(lines.Text()))
		format.Adjust(record)
		records = append(records, record)
	}
	if err := lines.Err(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, format.Render(nil)); err != nil {
		return err
	}
	for _, record := range records {
		if _, err := io.WriteString(w, format.Render(record)); err != nil {
			return err
		}
	}
	return nil
}

// Reformat reads a table from r and writes it to w with the columns named
// by newHeader, in newHeader's order.
//
// Each output record has exactly the new header's column count. A column
// whose label also appears in the input header receives the input record's
// field from that position; every other column receives the quoted empty
// token. Label matching is by exact token equality and the first
// occurrence wins on both sides. Reformat streams: one output line per
// input line, with the new header's own widths used as-is.
func Reformat(newHeader string, r io.Reader, w io.Writer) error {
	format := NewFormat(newHeader)

	// Output position per new-header label, first occurrence winning.
	position := make(map[string]int, format.Columns())
	for i, label := range format.Labels() {
		if _, ok := position[label]; !ok {
			position[label] = i
		}
	}

	lines := bufio.NewScanner(r)
	if !lines.Scan() {
		return lines.Err()
	}

	// Map each input column to its output position. A duplicate input
	// label keeps its first column only.
	oldLabels := tokenizer.Texts(tokenizer.Scan(lines.Text()))
	mapping := make([]int, len(oldLabels))
	claimed := make(map[int]bool, format.Columns())
	for i, label := range oldLabels {
		mapping[i] = -1
		if pos, ok := position[label]; ok && !claimed[pos] {
			mapping[i] = pos
			claimed[pos] = true
		}
	}

	if _, err := io.WriteString(w, format.Render(nil)); err != nil {
		return err
	}

	out := make([]string, format.Columns())
	for lines.Scan() {
		for i := range out {
			out[i] = EmptyToken
		}
		record := tokenizer.Texts(tokenizer.Scan(lines.Text()))
		for i, field := range record {
			if i >= len(mapping) {
				break
			}
			if pos := mapping[i]; pos >= 0 {
				out[pos] = field
			}
		}
		if _, err := io.WriteString(w, format.Render(out)); err != nil {
			return err
		}
	}
	return lines.Err()
}
