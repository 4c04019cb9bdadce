package builtin

import (
	"slices"

	"athletes/internal/records"
)

// Require removes any record missing a value for one of Fields. A value is
// missing when the key is absent, nil, or a blank string.
type Require struct {
	Fields []string
}

// Apply filters in place; survivors keep their input order.
func (r Require) Apply(in []records.Record) ([]records.Record, error) {
	return slices.DeleteFunc(in, r.incomplete), nil
}

func (r Require) incomplete(rec records.Record) bool {
	return slices.ContainsFunc(r.Fields, rec.IsNull)
}
