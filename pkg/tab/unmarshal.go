package tab

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Unmarshal parses tab-format data and stores the result in the value
// pointed to by v.
//
// Two target types are supported:
//
// 1. *[][]string - raw records, header row included:
//
//	var records [][]string
//	err := tab.Unmarshal(data, &records)
//
// 2. *[]struct - maps rows to struct fields using the header:
//
//	type Person struct {
//	    Name string `tab:"NAME"`
//	    Age  int    `tab:"AGE"`
//	}
//	var people []Person
//	err := tab.Unmarshal(data, &people)
//
// Header labels match a struct field's tab tag name or its field name,
// both case-sensitively first and then by exact field name. A column with
// no matching field is ignored; a field with no matching column keeps its
// zero value. Supported field types are string, the int/uint/float
// families, bool, time.Time (via a tag-named converter), and pointers to
// any of these; a nil pointer results from an empty value.
func Unmarshal(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w, got %T", ErrNotPointer, v)
	}
	target := rv.Elem()

	doc, err := ParseDocument(string(data))
	if err != nil {
		return err
	}

	// Raw records target.
	if target.Type() == reflect.TypeOf([][]string{}) {
		records := make([][]string, 0, doc.RecordCount()+1)
		if len(doc.Headers()) > 0 {
			records = append(records, doc.Headers())
		}
		for _, r := range doc.Records() {
			records = append(records, r.Fields())
		}
		target.Set(reflect.ValueOf(records))
		return nil
	}

	if target.Kind() != reflect.Slice {
		return fmt.Errorf("%w, got %T", ErrNotPointer, v)
	}
	elemType := target.Type().Elem()
	structType := elemType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrNotPointer, v)
	}

	// Column index per struct field.
	columns := structColumns(structType)
	headers := doc.Headers()
	colIdx := make([]int, len(columns))
	for i, c := range columns {
		colIdx[i] = -1
		for j, h := range headers {
			if h == c.name {
				colIdx[i] = j
				break
			}
		}
	}

	out := reflect.MakeSlice(target.Type(), 0, doc.RecordCount())
	for rowNum, record := range doc.Records() {
		elem := reflect.New(structType).Elem()
		for i, c := range columns {
			if colIdx[i] < 0 {
				continue
			}
			value, ok := record.Get(colIdx[i])
			if !ok {
				continue
			}
			if err := setField(elem.Field(c.index), value, c.converter); err != nil {
				return fmt.Errorf("tab: row %d, column %s: %w", rowNum+1, c.name, err)
			}
		}
		if elemType.Kind() == reflect.Ptr {
			p := reflect.New(structType)
			p.Elem().Set(elem)
			out = reflect.Append(out, p)
		} else {
			out = reflect.Append(out, elem)
		}
	}
	target.Set(out)
	return nil
}

// setField assigns a decoded string value to a struct field, applying a
// tag-named converter when one is requested.
func setField(fv reflect.Value, value string, converter string) error {
	if converter != "" {
		conv, ok := defaultRegistry.Get(converter)
		if !ok {
			return fmt.Errorf("unknown converter %q", converter)
		}
		converted, err := conv.Convert(value)
		if err != nil {
			return err
		}
		return assignConverted(fv, converted)
	}

	if fv.Kind() == reflect.Ptr {
		if value == "" {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		p := reflect.New(fv.Type().Elem())
		if err := setField(p.Elem(), value, ""); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value == "" {
			fv.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(value, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value == "" {
			fv.SetUint(0)
			return nil
		}
		n, err := strconv.ParseUint(value, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
		return nil

	case reflect.Float32, reflect.Float64:
		if value == "" {
			fv.SetFloat(0)
			return nil
		}
		f, err := strconv.ParseFloat(value, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
		return nil

	case reflect.Bool:
		b, err := BoolConverter{}.Convert(value)
		if err != nil {
			return err
		}
		fv.SetBool(b.(bool))
		return nil

	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
}

// assignConverted stores a converter's output in a struct field.
func assignConverted(fv reflect.Value, v interface{}) error {
	if fv.Kind() == reflect.Ptr {
		p := reflect.New(fv.Type().Elem())
		if err := assignConverted(p.Elem(), v); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type() == fv.Type() {
		fv.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(fv.Type()) {
		// time.Time is never convertible to a numeric kind, so this covers
		// int64 → int32 style narrowing from converters only.
		if _, isTime := v.(time.Time); !isTime {
			fv.Set(rv.Convert(fv.Type()))
			return nil
		}
	}
	return fmt.Errorf("converter produced %T for field of type %s", v, fv.Type())
}
