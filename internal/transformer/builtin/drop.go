package builtin

import "athletes/internal/records"

// Drop removes the listed columns from every record. Columns that are not
// present are ignored.
type Drop struct {
	Columns []string
}

func (d Drop) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for _, c := range d.Columns {
			delete(r, c)
		}
	}
	return in, nil
}
