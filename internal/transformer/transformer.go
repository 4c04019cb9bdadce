// Package transformer assembles table transforms into an ordered chain.
package transformer

import "athletes/internal/records"

// Transformer rewrites a whole table. Implementations may mutate the records
// they are given and may return a shorter slice.
type Transformer interface {
	Apply([]records.Record) ([]records.Record, error)
}

// Step is a named transformer; the name is the config kind.
type Step struct {
	Name string
	Transformer
}

// Chain is an ordered list of steps.
type Chain []Step

// Apply runs every step in order, stopping at the first error.
func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	for _, s := range c {
		var err error
		if out, err = s.Apply(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
