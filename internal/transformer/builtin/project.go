package builtin

import (
	"errors"
	"fmt"

	"athletes/internal/records"
)

// ErrMissingColumn is returned by Project when a record lacks a listed column.
var ErrMissingColumn = errors.New("missing column")

// Project reduces every record to exactly Columns. Every listed column must
// already be present (possibly null) in every record.
type Project struct {
	Columns []string
}

func (p Project) Apply(in []records.Record) ([]records.Record, error) {
	keep := make(map[string]struct{}, len(p.Columns))
	for _, c := range p.Columns {
		keep[c] = struct{}{}
	}
	for i, r := range in {
		for _, c := range p.Columns {
			if _, ok := r[c]; !ok {
				return nil, fmt.Errorf("project: row %d: %w %q", i, ErrMissingColumn, c)
			}
		}
		for k := range r {
			if _, ok := keep[k]; !ok {
				delete(r, k)
			}
		}
	}
	return in, nil
}
