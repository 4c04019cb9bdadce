package builtin

import (
	"time"

	"athletes/internal/records"
)

// Default replaces null (or absent) values with a literal per column.
type Default struct {
	Values map[string]string
}

func (d Default) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for col, v := range d.Values {
			if r.IsNull(col) {
				r[col] = v
			}
		}
	}
	return in, nil
}

// FillDate replaces null dates in Column with Value.
type FillDate struct {
	Column string
	Value  time.Time
}

func (f FillDate) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		if r.IsNull(f.Column) {
			r[f.Column] = f.Value
		}
	}
	return in, nil
}
