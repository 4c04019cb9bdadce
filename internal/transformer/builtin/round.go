package builtin

import (
	"athletes/internal/bio"
	"athletes/internal/records"
)

// Round rounds float64 values in Columns to Places decimal places.
type Round struct {
	Columns []string
	Places  int
}

func (rd Round) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for _, c := range rd.Columns {
			if v, ok := r[c].(float64); ok {
				r[c] = bio.RoundTo(v, rd.Places)
			}
		}
	}
	return in, nil
}
