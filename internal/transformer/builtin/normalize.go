package builtin

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"athletes/internal/records"
)

// Normalize cleans every string value in place: non-breaking spaces (and
// their mis-decoded "Â " form) become plain spaces, text is composed to NFC,
// surrounding whitespace is trimmed, and values left empty become null.
type Normalize struct{}

var nbsp = strings.NewReplacer("Â\u00a0", " ", "\u00a0", " ")

func (Normalize) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(norm.NFC.String(nbsp.Replace(s)))
			if s == "" {
				r[k] = nil
				continue
			}
			r[k] = s
		}
	}
	return in, nil
}
