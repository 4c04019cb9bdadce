package transformer

import (
	"fmt"
	"time"

	"athletes/internal/bio"
	"athletes/internal/config"
	"athletes/internal/schema"
	"athletes/internal/transformer/builtin"
)

// Column keys used by the default chain between stages.
const (
	colBorn          = "born"
	colBirthLocation = "birth_location"
	colRegionCountry = "region_country"
	colMeasurements  = "measurements"
)

// DroppedColumns are raw columns with no analytic value.
var DroppedColumns = []string{
	"full_name", "used_name", "other_names", "original_name",
	"name_order", "nationality", "titles",
}

// SupersededColumns are compound or discarded columns removed once parsed.
var SupersededColumns = []string{
	colBorn, "died", colBirthLocation, colRegionCountry, colMeasurements,
}

// DefaultTransforms is the canonical normalization chain, used when a
// pipeline file lists no transforms.
func DefaultTransforms() []config.Transform {
	return []config.Transform{
		{Kind: "dedup"},
		{Kind: "normalize"},
		{Kind: "display_name"},
		{Kind: "drop", Options: config.Options{"columns": DroppedColumns}},
		{Kind: "split_born"},
		{Kind: "split_location"},
		{Kind: "split_region"},
		{Kind: "split_measurements"},
		{Kind: "drop", Options: config.Options{"columns": SupersededColumns}},
		{Kind: "require", Options: config.Options{"fields": []string{schema.NOC}}},
		{Kind: "default"},
		{Kind: "impute"},
		{Kind: "fill_date"},
		{Kind: "round"},
		{Kind: "project"},
	}
}

// Build turns transform configs into a Chain.
func Build(ts []config.Transform) (Chain, error) {
	chain := make(Chain, 0, len(ts))
	for i, t := range ts {
		tr, err := build(t)
		if err != nil {
			return nil, fmt.Errorf("transform[%d] %s: %w", i, t.Kind, err)
		}
		chain = append(chain, Step{Name: t.Kind, Transformer: tr})
	}
	return chain, nil
}

func build(t config.Transform) (Transformer, error) {
	o := t.Options
	switch t.Kind {
	case "normalize":
		return builtin.Normalize{}, nil
	case "dedup":
		return builtin.DeDup{
			Keys:         o.StringSlice("keys"),
			Policy:       o.String("policy", "keep-first"),
			PreferFields: o.StringSlice("prefer_fields"),
		}, nil
	case "display_name":
		return builtin.DisplayName{
			Source:    o.String("source", "used_name"),
			Fallback:  o.String("fallback", "full_name"),
			Target:    o.String("target", schema.Name),
			Separator: o.String("separator", builtin.NameSeparator),
		}, nil
	case "drop":
		return builtin.Drop{Columns: o.StringSlice("columns")}, nil
	case "split_born":
		return builtin.SplitBorn{
			Source:        o.String("source", colBorn),
			DateField:     o.String("date", schema.BirthDate),
			LocationField: o.String("location", colBirthLocation),
		}, nil
	case "split_location":
		return builtin.SplitLocation{
			Source:    o.String("source", colBirthLocation),
			CityField: o.String("city", schema.City),
			RestField: o.String("rest", colRegionCountry),
		}, nil
	case "split_region":
		return builtin.SplitRegion{
			Source:       o.String("source", colRegionCountry),
			RegionField:  o.String("region", schema.Region),
			CountryField: o.String("country", schema.Country),
		}, nil
	case "split_measurements":
		return builtin.SplitMeasurements{
			Source:      o.String("source", colMeasurements),
			HeightField: o.String("height", schema.HeightCM),
			WeightField: o.String("weight", schema.WeightKG),
		}, nil
	case "require":
		return builtin.Require{Fields: o.StringSlice("fields")}, nil
	case "default":
		values := o.StringMap("values")
		if len(values) == 0 {
			values = map[string]string{
				schema.City:         schema.Unknown,
				schema.Region:       schema.Unknown,
				schema.Country:      schema.Unknown,
				schema.Affiliations: schema.Unknown,
			}
		}
		return builtin.Default{Values: values}, nil
	case "impute":
		if s := o.String("strategy", "most_frequent"); s != "most_frequent" {
			return nil, fmt.Errorf("unsupported strategy %q", s)
		}
		return builtin.Impute{Columns: o.StringSlice("columns")}, nil
	case "fill_date":
		v := o.String("value", bio.DefaultBirthDate)
		d, err := time.Parse(schema.DateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", v, err)
		}
		return builtin.FillDate{Column: o.String("column", schema.BirthDate), Value: d}, nil
	case "round":
		cols := o.StringSlice("columns")
		if len(cols) == 0 {
			cols = []string{schema.HeightCM, schema.WeightKG}
		}
		return builtin.Round{Columns: cols, Places: o.Int("places", 1)}, nil
	case "project":
		cols := o.StringSlice("columns")
		if len(cols) == 0 {
			cols = schema.Default().Names()
		}
		return builtin.Project{Columns: cols}, nil
	}
	return nil, fmt.Errorf("unknown transform kind %q", t.Kind)
}
