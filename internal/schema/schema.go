// Package schema describes the cleaned athlete table: its column order, the
// logical type of each column and how values are rendered for file output and
// database rows.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"athletes/internal/records"
)

// Output column names.
const (
	AthleteID    = "athlete_id"
	Name         = "name"
	Sex          = "sex"
	BirthDate    = "birth_date"
	City         = "city"
	Region       = "region"
	Country      = "country"
	NOC          = "noc"
	HeightCM     = "height_cm"
	WeightKG     = "weight_kg"
	Roles        = "roles"
	Affiliations = "affiliations"
)

// Unknown is the literal used for missing categorical values.
const Unknown = "Unknown"

// DateLayout renders birth dates and parses configured date values.
const DateLayout = time.DateOnly

// Kind is a logical column type; storage dialects map it to SQL types.
type Kind string

const (
	KindText  Kind = "text"
	KindDate  Kind = "date"
	KindFloat Kind = "float"
)

// Column is one output column.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Schema is an ordered list of columns.
type Schema []Column

// Default returns the cleaned athlete table layout.
func Default() Schema {
	return Schema{
		{Name: AthleteID, Kind: KindText, Nullable: true},
		{Name: Name, Kind: KindText, Nullable: true},
		{Name: Sex, Kind: KindText, Nullable: true},
		{Name: BirthDate, Kind: KindDate},
		{Name: City, Kind: KindText},
		{Name: Region, Kind: KindText},
		{Name: Country, Kind: KindText},
		{Name: NOC, Kind: KindText},
		{Name: HeightCM, Kind: KindFloat, Nullable: true},
		{Name: WeightKG, Kind: KindFloat, Nullable: true},
		{Name: Roles, Kind: KindText, Nullable: true},
		{Name: Affiliations, Kind: KindText},
	}
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Name
	}
	return out
}

// Strings renders r as text cells in column order. Nulls become "".
func (s Schema) Strings(r records.Record) []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = Format(r[c.Name])
	}
	return out
}

// Values returns r's values in column order, keeping their Go types.
func (s Schema) Values(r records.Record) []any {
	out := make([]any, len(s))
	for i, c := range s {
		out[i] = r[c.Name]
	}
	return out
}

// Format renders a single value for text output: dates as YYYY-MM-DD and
// floats with the shortest exact representation, always carrying a decimal
// point ("80.0").
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(DateLayout)
	case float64:
		f := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.ContainsRune(f, '.') {
			f += ".0"
		}
		return f
	case int:
		return strconv.Itoa(t)
	}
	return fmt.Sprint(v)
}

// Select returns the columns named in names, in that order. Names not in s
// become nullable text columns.
func (s Schema) Select(names []string) Schema {
	byName := make(map[string]Column, len(s))
	for _, c := range s {
		byName[c.Name] = c
	}
	out := make(Schema, 0, len(names))
	for _, n := range names {
		c, ok := byName[n]
		if !ok {
			c = Column{Name: n, Kind: KindText, Nullable: true}
		}
		out = append(out, c)
	}
	return out
}
