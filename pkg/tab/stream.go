package tab

import (
	"bufio"
	"io"
)

// Scanner provides a streaming interface for reading table records one at
// a time. Memory use is O(1) beyond the current line, so it suits large
// tables and process pipelines.
//
// The first input line is always the header; it is consumed on the first
// call to Scan.
//
// Example usage:
//
//	scanner := tab.NewScanner(file)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByName("NAME")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	lines       *bufio.Scanner
	headers     []string
	fields      []string
	reuseRecord bool
	started     bool
	done        bool
	err         error
}

// NewScanner creates a Scanner reading tab-format text from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{lines: bufio.NewScanner(r)}
}

// SetReuseRecord sets whether successive calls to Record may return a
// Record sharing the previous call's field storage. This reduces
// allocations; copy the Record if its values must outlive the next Scan.
// Returns the Scanner for method chaining.
func (s *Scanner) SetReuseRecord(reuse bool) *Scanner {
	s.reuseRecord = reuse
	return s
}

// Scan advances to the next data record. It returns false at end of input
// or on a read error; Err reports which.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	if !s.started {
		s.started = true
		if !s.lines.Scan() {
			s.finish()
			return false
		}
		for _, token := range SplitFields(s.lines.Text()) {
			s.headers = append(s.headers, Decode(token))
		}
	}

	if !s.lines.Scan() {
		s.finish()
		return false
	}

	tokens := SplitFields(s.lines.Text())
	if s.reuseRecord && cap(s.fields) >= len(tokens) {
		s.fields = s.fields[:len(tokens)]
	} else {
		s.fields = make([]string, len(tokens))
	}
	for i, token := range tokens {
		s.fields[i] = Decode(token)
	}
	return true
}

// Record returns the current record. Valid only after Scan returns true.
func (s *Scanner) Record() Record {
	return Record{fields: s.fields, headers: s.headers}
}

// Headers returns the decoded header labels. Populated after the first
// call to Scan.
func (s *Scanner) Headers() []string {
	return s.headers
}

// Err returns the first error encountered while reading, or nil at a
// clean end of input.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) finish() {
	s.done = true
	s.err = s.lines.Err()
}
