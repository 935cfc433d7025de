package tab

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into tab format.
type Marshaler interface {
	MarshalTab() ([]byte, error)
}

// Unmarshaler is the interface implemented by types that can unmarshal
// tab-format data.
type Unmarshaler interface {
	UnmarshalTab([]byte) error
}

// fieldInfo describes how one struct field maps to a column.
type fieldInfo struct {
	name      string
	index     int
	omitEmpty bool
	skip      bool
	converter string
}

// getFieldInfo parses a struct field's tab tag.
//
// Tag format:
//
//	Field int `tab:"myName"`            // column "myName"
//	Field int `tab:"myName,omitempty"`  // empty values render as ""
//	Field int `tab:"-"`                 // always omitted
//	Field int `tab:",convert=date"`     // use the registered "date" converter
//	Field int                           // column named after the field
func getFieldInfo(field reflect.StructField) fieldInfo {
	info := fieldInfo{name: field.Name, index: field.Index[0]}

	tag, ok := field.Tag.Lookup("tab")
	if !ok {
		return info
	}
	if tag == "-" {
		info.skip = true
		return info
	}

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		info.name = parts[0]
	}
	for _, opt := range parts[1:] {
		switch {
		case opt == "omitempty":
			info.omitEmpty = true
		case strings.HasPrefix(opt, "convert="):
			info.converter = strings.TrimPrefix(opt, "convert=")
		}
	}
	return info
}

// Marshal returns the tab-format encoding of v.
//
// Marshal traverses v, which must be a slice of structs (or of pointers to
// structs). Each struct becomes a row, with exported struct fields
// becoming columns. The header is generated from field names or tab tags
// and sorted alphabetically for deterministic output; columns are aligned
// to the widest value as in Align.
//
// The "omitempty" option renders an empty value (false, 0, nil pointer,
// empty string) as the quoted empty token while keeping the column
// structure intact. A "-" tag omits the field entirely. Nil pointers in
// the slice are skipped. Anonymous struct fields and map or slice fields
// (other than []byte via a string conversion) are not supported.
func Marshal(v interface{}) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return nil, fmt.Errorf("%w, got nil", ErrNotSlice)
	}
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w, got %s", ErrNotSlice, rv.Type())
	}
	if rv.Len() == 0 {
		return []byte{}, nil
	}

	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got slice of %s", ErrNotSlice, elemType)
	}

	fields := structColumns(elemType)

	doc := NewDocument()
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.name
	}
	doc.SetHeaders(headers)

	for rowIdx := 0; rowIdx < rv.Len(); rowIdx++ {
		row := rv.Index(rowIdx)
		if row.Kind() == reflect.Ptr {
			if row.IsNil() {
				continue
			}
			row = row.Elem()
		}

		record := make([]string, len(fields))
		for i, f := range fields {
			fieldVal := row.Field(f.index)
			if f.omitEmpty && isEmptyValue(fieldVal) {
				record[i] = ""
				continue
			}
			s, err := marshalFieldValue(fieldVal)
			if err != nil {
				return nil, fmt.Errorf("tab: marshal field %s: %w", f.name, err)
			}
			record[i] = s
		}
		doc.AddRecord(record)
	}

	text, err := doc.Tab()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// structColumns collects the mapped columns of a struct type, sorted by
// column name for deterministic output.
func structColumns(t reflect.Type) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			// Unexported.
			continue
		}
		info := getFieldInfo(field)
		if info.skip {
			continue
		}
		fields = append(fields, info)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].name < fields[j].name
	})
	return fields
}

// marshalFieldValue converts a single field value to its string form.
func marshalFieldValue(rv reflect.Value) (string, error) {
	if !rv.IsValid() {
		return "", nil
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "", nil
		}
		return marshalFieldValue(rv.Elem())

	case reflect.String:
		return rv.String(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil

	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil

	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil

	default:
		return "", fmt.Errorf("unsupported type %s", rv.Type())
	}
}

// isEmptyValue reports whether the value is empty for omitempty purposes.
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	}
	return false
}
