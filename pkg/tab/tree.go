package tab

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/shapestone/shape-tab/internal/tokenizer"
)

// SyntheticColumn is the column label used when a document's records are
// bare values rather than key/value maps.
const SyntheticColumn = "COL1"

// FromTree renders a hierarchical document as a table.
//
// The document root is normalized into a list of records: a bare scalar or
// a single map becomes a one-element list, and a list element that is not
// a map is wrapped under the SyntheticColumn label. Column order is the
// lexicographically sorted union of all keys across records. A record
// missing a key renders the quoted empty token. The whole document is
// normalized before any output is written, and widths are adjusted against
// every record first, as in Align.
func FromTree(doc interface{}, w io.Writer) error {
	records := normalizeTree(doc)
	if len(records) == 0 {
		return nil
	}

	keys := collectKeys(records)

	// The header is itself a line of encoded tokens.
	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = Encode(k)
	}
	format := NewFormat(joinFields(header))

	rows := make([][]string, len(records))
	for i, record := range records {
		row := make([]string, len(keys))
		for j, k := range keys {
			if v, ok := record[k]; ok {
				row[j] = Encode(stringify(v))
			} else {
				row[j] = EmptyToken
			}
		}
		format.Adjust(row)
		rows[i] = row
	}

	if _, err := io.WriteString(w, format.Render(nil)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := io.WriteString(w, format.Render(row)); err != nil {
			return err
		}
	}
	return nil
}

// ToTree reads a table from r and returns one key/value map per data row.
//
// Header labels and field values are both decoded. Each row is zipped
// positionally against the header, stopping at the shorter of the two.
// An empty input yields an empty list.
func ToTree(r io.Reader) ([]map[string]string, error) {
	lines := bufio.NewScanner(r)
	if !lines.Scan() {
		return []map[string]string{}, lines.Err()
	}

	fields := tokenizer.Scan(lines.Text())
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = Decode(f.Text)
	}

	rows := []map[string]string{}
	for lines.Scan() {
		record := tokenizer.Scan(lines.Text())
		row := make(map[string]string, len(labels))
		for i, f := range record {
			if i >= len(labels) {
				break
			}
			row[labels[i]] = Decode(f.Text)
		}
		rows = append(rows, row)
	}
	return rows, lines.Err()
}

// FromJSON parses JSON from r and renders it as a table on w.
// A JSON parse failure is fatal and aborts before any output.
func FromJSON(r io.Reader, w io.Writer) error {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("tab: parse json input: %w", err)
	}
	return FromTree(doc, w)
}

// FromYAML parses YAML from r and renders it as a table on w.
func FromYAML(r io.Reader, w io.Writer) error {
	var doc interface{}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("tab: parse yaml input: %w", err)
	}
	return FromTree(doc, w)
}

// FromTOML parses TOML from r and renders it as a table on w. A TOML
// document is a single map, so it renders as a one-row table.
func FromTOML(r io.Reader, w io.Writer) error {
	var doc map[string]interface{}
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("tab: parse toml input: %w", err)
	}
	return FromTree(doc, w)
}

// ToJSON reads a table from r and writes it as a JSON array of objects.
func ToJSON(r io.Reader, w io.Writer) error {
	rows, err := ToTree(r)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ToYAML reads a table from r and writes it as a YAML sequence of maps.
func ToYAML(r io.Reader, w io.Writer) error {
	rows, err := ToTree(r)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(rows)
}

// normalizeTree flattens a document root into a list of key/value records.
func normalizeTree(doc interface{}) []map[string]interface{} {
	switch d := doc.(type) {
	case nil:
		return nil
	case []interface{}:
		records := make([]map[string]interface{}, 0, len(d))
		for _, elem := range d {
			records = append(records, asRecord(elem))
		}
		return records
	default:
		return []map[string]interface{}{asRecord(doc)}
	}
}

// asRecord coerces one list element into a record, wrapping non-map values
// under the synthetic column.
func asRecord(elem interface{}) map[string]interface{} {
	switch e := elem.(type) {
	case map[string]interface{}:
		return e
	case map[interface{}]interface{}:
		// yaml.v2-style maps; yaml.v3 produces map[string]interface{} but
		// nested documents from other loaders may not.
		record := make(map[string]interface{}, len(e))
		for k, v := range e {
			record[stringify(k)] = v
		}
		return record
	default:
		return map[string]interface{}{SyntheticColumn: elem}
	}
}

// collectKeys returns the sorted union of keys across records.
func collectKeys(records []map[string]interface{}) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, record := range records {
		for k := range record {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// stringify renders a leaf value the way the source document's own string
// conversion would.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// joinFields joins encoded tokens into a line with single-space separation.
func joinFields(fields []string) string {
	return strings.Join(fields, " ")
}
