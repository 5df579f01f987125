package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of date field values
const DateLayout = "2006-01-02"

// RawValues are the field values as submitted by the presentation layer, keyed by column
type RawValues map[string]string

// Get returns the raw value for a column, empty when absent
func (r RawValues) Get(column string) string {
	if r == nil {
		return ""
	}
	return r[column]
}

// RecordValues are bound field values keyed by column.
// Each value is a string, an int64, a time.Time or nil.
type RecordValues map[string]any

// Row is one stored record
type Row struct {
	ID     int64        `json:"id"`
	Values RecordValues `json:"values"`
}

// Int returns the integer value at column
func (v RecordValues) Int(column string) (int64, bool) {
	switch n := v[column].(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// Float returns the numeric value at column
func (v RecordValues) Float(column string) (float64, bool) {
	switch n := v[column].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	i, ok := v.Int(column)
	return float64(i), ok
}

// String returns the text value at column
func (v RecordValues) String(column string) (string, bool) {
	switch s := v[column].(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case nil:
		return "", false
	}
	return FormatValue(v[column]), true
}

// FormatValue renders a bound value for display, audit lines and exports
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format(DateLayout)
	default:
		return fmt.Sprint(v)
	}
}

// ParseDate parses a date field value in YYYY-MM-DD or RFC 3339 form
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Bind converts raw values into typed record values for the schema.
// Blank values bind as nil.
func Bind(schema *Schema, raw RawValues) (RecordValues, error) {
	values := make(RecordValues, len(schema.Fields))
	for _, f := range schema.Fields {
		value, err := BindField(f, raw.Get(f.Column))
		if err != nil {
			return nil, err
		}
		values[f.Column] = value
	}
	return values, nil
}

// BindField converts one raw value to the stored form of its field.
// Text is trimmed and upper-cased, numbers become int64 and dates a UTC midnight.
func BindField(f FieldSpec, raw string) (any, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	switch f.Type {
	case FieldNumber:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, NotANumber(f.Label)
		}
		return n, nil
	case FieldDate:
		d, err := ParseDate(value)
		if err != nil {
			return nil, FormatMismatch(f.Label, DateHint)
		}
		return d, nil
	default:
		return strings.ToUpper(value), nil
	}
}
