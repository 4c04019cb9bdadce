// Package records defines the in-memory row representation shared by the
// parsers, transformers and sinks.
//
// A Record maps a column key to its value. A nil value (or an absent key) is
// a null. Parsers produce string values; transformers may replace them with
// typed values such as time.Time or float64.
package records

import "strings"

// Record is a single row keyed by column name.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsNull reports whether key is absent, nil, or a blank string.
func (r Record) IsNull(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// String returns the string value stored under key. ok is false when the value
// is null or not a string.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SetOptional stores *p under key, or nil when p is nil.
func SetOptional[T any](r Record, key string, p *T) {
	if p == nil {
		r[key] = nil
		return
	}
	r[key] = *p
}
