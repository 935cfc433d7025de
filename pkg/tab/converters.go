// Package tab type converters for field values.
//
// Converters transform decoded string field values into typed Go values
// during Unmarshal. Column type inference is deliberately absent: a
// converter runs only where a struct tag asks for it.
package tab

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Converter turns a decoded field value into a typed Go value. Unmarshal
// looks one up by name for every struct field tagged `tab:",convert=name"`.
type Converter interface {
	// Convert transforms a decoded field value into the target type.
	Convert(value string) (interface{}, error)
}

// ConverterFunc adapts a plain function to the Converter interface, for
// one-off converters registered with RegisterConverter.
type ConverterFunc func(string) (interface{}, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(value string) (interface{}, error) {
	return f(value)
}

// IntConverter parses a field as an int64. An empty field, the decoded
// form of the empty token, yields zero.
type IntConverter struct {
	// Base is the numeric base for parsing (default: 10)
	Base int
}

// Convert implements Converter for IntConverter.
func (c IntConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return int64(0), nil
	}
	base := c.Base
	if base == 0 {
		base = 10
	}
	return strconv.ParseInt(strings.TrimSpace(value), base, 64)
}

// FloatConverter parses a field as a float64. An empty field yields zero.
type FloatConverter struct{}

// Convert implements Converter for FloatConverter.
func (c FloatConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return float64(0), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// BoolConverter parses a field as a bool. It accepts true/false, 1/0,
// yes/no, y/n, on/off, and t/f, case-insensitively; an empty field yields
// false.
type BoolConverter struct{}

// Convert implements Converter for BoolConverter.
func (c BoolConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return false, nil
	}
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	default:
		return false, fmt.Errorf("cannot convert %q to bool", value)
	}
}

// DateConverter parses a field as a calendar date. An empty field yields
// the zero time.Time.
type DateConverter struct {
	// Format is the date format string (default: "2006-01-02")
	Format string
	// Location is the timezone for parsing (default: UTC)
	Location *time.Location
}

// Convert implements Converter for DateConverter.
func (c DateConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return time.Time{}, nil
	}
	format := c.Format
	if format == "" {
		format = "2006-01-02"
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(format, strings.TrimSpace(value), loc)
}

// DateTimeConverter parses a field as a date with a time of day. An empty
// field yields the zero time.Time.
type DateTimeConverter struct {
	// Format is the datetime format string (default: "2006-01-02 15:04:05")
	Format string
	// Location is the timezone for parsing (default: UTC)
	Location *time.Location
}

// Convert implements Converter for DateTimeConverter.
func (c DateTimeConverter) Convert(value string) (interface{}, error) {
	if value == "" {
		return time.Time{}, nil
	}
	format := c.Format
	if format == "" {
		format = "2006-01-02 15:04:05"
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(format, strings.TrimSpace(value), loc)
}

// ConverterRegistry maps `convert=` tag names to converters.
type ConverterRegistry struct {
	converters map[string]Converter
}

// NewConverterRegistry creates a new registry with the built-in
// converters: int, float, bool, date, datetime.
func NewConverterRegistry() *ConverterRegistry {
	r := &ConverterRegistry{
		converters: make(map[string]Converter),
	}
	r.Register("int", IntConverter{})
	r.Register("float", FloatConverter{})
	r.Register("bool", BoolConverter{})
	r.Register("date", DateConverter{})
	r.Register("datetime", DateTimeConverter{})
	return r
}

// Register adds a converter under the given tag name, replacing any
// previous registration.
func (r *ConverterRegistry) Register(name string, conv Converter) {
	r.converters[name] = conv
}

// Get looks up a converter by tag name.
func (r *ConverterRegistry) Get(name string) (Converter, bool) {
	conv, ok := r.converters[name]
	return conv, ok
}

// defaultRegistry serves Unmarshal calls that use tag-named converters.
var defaultRegistry = NewConverterRegistry()

// RegisterConverter adds a named converter to the registry used by
// Unmarshal's `tab:",convert=name"` tags.
func RegisterConverter(name string, conv Converter) {
	defaultRegistry.Register(name, conv)
}
