// Package tab DOM API for building and manipulating tables.
//
// Document represents a table with a header and data records, holding raw
// (decoded) values. Rendering encodes every value and lays the table out
// in aligned columns:
//
//	doc := tab.NewDocument().
//		SetHeaders([]string{"name", "age"}).
//		AddRecord([]string{"Alice", "30"}).
//		AddRecord([]string{"Bob", "25"})
//	text, _ := doc.Tab()
//
// Record provides type-safe access to one row's fields by index or by
// header name.
package tab

import (
	"bufio"
	"strings"
)

// Document represents a table with a fluent API for manipulation.
// All setter methods return *Document to enable method chaining.
//
// Header labels and field values are raw strings; encoding happens at
// render time and decoding at parse time.
type Document struct {
	headers []string
	records [][]string
}

// Record represents a single row of a table.
type Record struct {
	fields  []string
	headers []string // reference to document headers for name-based access
}

// NewDocument creates a new empty Document.
func NewDocument() *Document {
	return &Document{
		headers: []string{},
		records: make([][]string, 0),
	}
}

// ParseDocument parses tab-format text into a Document.
//
// The first line is the header; remaining lines are data records. All
// labels and fields are decoded. Malformed field text never fails; it
// degrades per the codec rules.
func ParseDocument(input string) (*Document, error) {
	doc := NewDocument()

	lines := bufio.NewScanner(strings.NewReader(input))
	if !lines.Scan() {
		return doc, lines.Err()
	}

	for _, token := range SplitFields(lines.Text()) {
		doc.headers = append(doc.headers, Decode(token))
	}
	for lines.Scan() {
		tokens := SplitFields(lines.Text())
		record := make([]string, len(tokens))
		for i, token := range tokens {
			record[i] = Decode(token)
		}
		doc.AddRecord(record)
	}
	return doc, lines.Err()
}

// SetHeaders sets the column headers for this document.
// Returns the Document for method chaining.
func (d *Document) SetHeaders(headers []string) *Document {
	d.headers = headers
	return d
}

// AddRecord adds a data record (row) to the document.
// Returns the Document for method chaining.
func (d *Document) AddRecord(fields []string) *Document {
	d.records = append(d.records, fields)
	return d
}

// Headers returns the column headers.
func (d *Document) Headers() []string {
	return d.headers
}

// Records returns all data records as Record values.
func (d *Document) Records() []Record {
	records := make([]Record, len(d.records))
	for i, fields := range d.records {
		records[i] = Record{fields: fields, headers: d.headers}
	}
	return records
}

// RecordCount returns the number of data records, header excluded.
func (d *Document) RecordCount() int {
	return len(d.records)
}

// GetRecord returns the record at the given 0-based index.
// Returns (Record, false) if the index is out of bounds.
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return Record{fields: d.records[index], headers: d.headers}, true
}

// Tab renders the Document as aligned tab-format text.
//
// Every value is encoded, a Format is built from the encoded header, all
// records widen the columns before any output, and the header plus each
// record render in fixed-width columns.
func (d *Document) Tab() (string, error) {
	header := make([]string, len(d.headers))
	for i, h := range d.headers {
		header[i] = Encode(h)
	}
	format := NewFormat(strings.Join(header, " "))

	rows := make([][]string, len(d.records))
	for i, record := range d.records {
		row := make([]string, len(record))
		for j, field := range record {
			row[j] = Encode(field)
		}
		format.Adjust(row)
		rows[i] = row
	}

	var sb strings.Builder
	sb.WriteString(format.Render(nil))
	for _, row := range rows {
		sb.WriteString(format.Render(row))
	}
	return sb.String(), nil
}

// Get returns the field value at the given 0-based index.
// Returns (value, false) if the index is out of bounds.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName returns the field value by header name.
// Returns (value, false) if the name is not found or no headers are set.
func (r Record) GetByName(name string) (string, bool) {
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns a copy of all field values in the record.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}
