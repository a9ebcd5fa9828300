// Package rowcodec holds the column-level marshaling shared by the SQL
// engines, so SQLite and Postgres agree on one wire shape for JSON-typed
// fields, booleans and timestamps instead of each engine growing its own.
package rowcodec

import (
	"encoding/json"
	"time"
)

// EncodeJSON serializes v for a TEXT/JSONB column. A nil value encodes as the
// given zero literal ("{}" or "[]") so columns never hold SQL NULL.
func EncodeJSON(v any, zero string) (string, error) {
	if v == nil {
		return zero, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return zero, nil
	}
	return string(b), nil
}

// DecodeMap parses a JSON object column. Empty or malformed input decodes to
// an empty map rather than failing the whole row read.
func DecodeMap(raw string) map[string]any {
	m := map[string]any{}
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]any{}
	}
	return m
}

// DecodeStringSlice parses a JSON string-array column, defaulting to an
// empty slice.
func DecodeStringSlice(raw string) []string {
	s := []string{}
	if raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return []string{}
	}
	return s
}

// DecodeAnySlice parses a JSON array column of arbitrary values, defaulting
// to an empty slice.
func DecodeAnySlice(raw string) []any {
	s := []any{}
	if raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return []any{}
	}
	return s
}

// DecodeIntMap parses a JSON object column of integer values.
func DecodeIntMap(raw string) map[string]int {
	m := map[string]int{}
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]int{}
	}
	return m
}

// DecodeFloatMap parses a JSON object column of numeric values.
func DecodeFloatMap(raw string) map[string]float64 {
	m := map[string]float64{}
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]float64{}
	}
	return m
}

// Millis converts a time to the epoch-millisecond integer stored by the
// SQLite engine.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts a stored epoch-millisecond integer back to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// BoolToInt encodes a boolean flag as the 0/1 integer stored by the SQLite
// engine.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IntToBool decodes a 0/1 integer flag.
func IntToBool(i int) bool {
	return i != 0
}
