package builtin

import (
	"strings"

	"athletes/internal/records"
)

// NameSeparator joins given and family names in the raw "Used name" column.
const NameSeparator = "•"

// DisplayName derives a readable name column. The Source value has every
// Separator replaced by a space and its whitespace collapsed; when Source is
// null the Fallback column is used the same way.
type DisplayName struct {
	Source    string
	Fallback  string
	Target    string
	Separator string
}

func (d DisplayName) Apply(in []records.Record) ([]records.Record, error) {
	sep := d.Separator
	if sep == "" {
		sep = NameSeparator
	}
	for _, r := range in {
		src := d.Source
		if r.IsNull(src) && d.Fallback != "" {
			src = d.Fallback
		}
		s, ok := r.String(src)
		if !ok {
			r[d.Target] = nil
			continue
		}
		name := strings.Join(strings.Fields(strings.ReplaceAll(s, sep, " ")), " ")
		if name == "" {
			r[d.Target] = nil
			continue
		}
		r[d.Target] = name
	}
	return in, nil
}
