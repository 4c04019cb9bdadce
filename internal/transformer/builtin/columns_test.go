package builtin

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"athletes/internal/records"
)

func TestDisplayName(t *testing.T) {
	in := []records.Record{
		{"used_name": "Jean•Pierre•Dupont", "full_name": "Jean-Pierre Dupont"},
		{"used_name": nil, "full_name": "Mia  Berg"},
		{"used_name": "", "full_name": nil},
	}
	got := apply(t, DisplayName{Source: "used_name", Fallback: "full_name", Target: "name"}, in)
	want := []any{"Jean Pierre Dupont", "Mia Berg", nil}
	for i, w := range want {
		if got[i]["name"] != w {
			t.Fatalf("row %d: name = %#v, want %#v", i, got[i]["name"], w)
		}
	}
}

func TestDrop(t *testing.T) {
	in := []records.Record{{"a": 1, "b": 2, "c": 3}}
	got := apply(t, Drop{Columns: []string{"b", "missing"}}, in)
	if !reflect.DeepEqual(got[0], records.Record{"a": 1, "c": 3}) {
		t.Fatalf("Drop: got %#v", got[0])
	}
}

func TestRequire(t *testing.T) {
	in := []records.Record{
		{"id": "1", "noc": "FRA"},
		{"id": "2", "noc": nil},
		{"id": "3"},
		{"id": "4", "noc": "  "},
		{"id": "5", "noc": "GBR"},
	}
	got := apply(t, Require{Fields: []string{"noc"}}, in)
	if len(got) != 2 || got[0]["id"] != "1" || got[1]["id"] != "5" {
		t.Fatalf("Require: got %#v", got)
	}
}

func TestSplitBornAndLocation(t *testing.T) {
	in := []records.Record{
		{"born": "12 January 1980 in Paris, France (Île-de-France)"},
		{"born": "c. 1900"},
		{"born": nil},
		{},
	}
	chain := []interface {
		Apply([]records.Record) ([]records.Record, error)
	}{
		SplitBorn{Source: "born", DateField: "birth_date", LocationField: "birth_location"},
		SplitLocation{Source: "birth_location", CityField: "city", RestField: "region_country"},
		SplitRegion{Source: "region_country", RegionField: "region", CountryField: "country"},
	}
	rows := in
	for _, tr := range chain {
		rows = apply(t, tr, rows)
	}

	want0 := records.Record{
		"birth_date": time.Date(1980, 1, 12, 0, 0, 0, 0, time.UTC),
		"city":       "Paris",
		"region":     "France",
		"country":    "Île-de-France",
	}
	if !reflect.DeepEqual(rows[0], want0) {
		t.Fatalf("row 0: got %#v want %#v", rows[0], want0)
	}
	empty := records.Record{"birth_date": nil, "city": nil, "region": nil, "country": nil}
	for i := 1; i < len(rows); i++ {
		if !reflect.DeepEqual(rows[i], empty) {
			t.Fatalf("row %d: got %#v want %#v", i, rows[i], empty)
		}
	}
}

func TestSplitMeasurements(t *testing.T) {
	in := []records.Record{
		{"measurements": "178 cm / 75 kg"},
		{"measurements": "62 kg"},
		{"measurements": "tall"},
		{"measurements": nil},
	}
	got := apply(t, SplitMeasurements{Source: "measurements", HeightField: "h", WeightField: "w"}, in)
	want := []records.Record{
		{"h": 178.0, "w": 75.0},
		{"h": nil, "w": 62.0},
		{"h": nil, "w": nil},
		{"h": nil, "w": nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitMeasurements: got %#v want %#v", got, want)
	}
}

func TestDefaultAndFillDate(t *testing.T) {
	sentinel := time.Date(1975, 1, 1, 0, 0, 0, 0, time.UTC)
	born := time.Date(1980, 1, 12, 0, 0, 0, 0, time.UTC)
	in := []records.Record{
		{"affiliations": nil, "birth_date": nil},
		{"affiliations": "Club", "birth_date": born},
		{},
	}
	rows := apply(t, Default{Values: map[string]string{"affiliations": "Unknown"}}, in)
	rows = apply(t, FillDate{Column: "birth_date", Value: sentinel}, rows)

	want := []records.Record{
		{"affiliations": "Unknown", "birth_date": sentinel},
		{"affiliations": "Club", "birth_date": born},
		{"affiliations": "Unknown", "birth_date": sentinel},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %#v want %#v", rows, want)
	}
}

func TestImpute(t *testing.T) {
	in := []records.Record{
		{"h": 180.0, "w": nil, "name": "a"},
		{"h": nil, "w": nil, "name": "b"},
		{"h": 170.0, "w": nil, "name": nil},
		{"h": 170.0, "w": nil, "name": "c"},
		{"h": 180.0, "w": nil, "name": "d"},
	}
	got := apply(t, Impute{}, in)

	// 180 and 170 tie; 180 was seen first.
	if got[1]["h"] != 180.0 {
		t.Fatalf("imputed h = %#v, want 180", got[1]["h"])
	}
	// No values at all: stays null. Text columns are not imputed.
	if got[0]["w"] != nil || got[2]["name"] != nil {
		t.Fatalf("unexpected fill: %#v", got)
	}
}

func TestImputeExplicitColumns(t *testing.T) {
	in := []records.Record{{"h": 1.0, "w": 2.0}, {"h": nil, "w": nil}}
	got := apply(t, Impute{Columns: []string{"w"}}, in)
	if got[1]["h"] != nil || got[1]["w"] != 2.0 {
		t.Fatalf("got %#v", got[1])
	}
}

func TestRound(t *testing.T) {
	in := []records.Record{{"h": 178.25, "w": 80.04, "s": "x"}, {"h": nil}}
	got := apply(t, Round{Columns: []string{"h", "w", "s"}, Places: 1}, in)
	if got[0]["h"] != 178.2 || got[0]["w"] != 80.0 || got[0]["s"] != "x" || got[1]["h"] != nil {
		t.Fatalf("Round: got %#v", got)
	}
}

func TestProject(t *testing.T) {
	in := []records.Record{{"a": 1, "b": nil, "c": 3}}
	got := apply(t, Project{Columns: []string{"b", "a"}}, in)
	if !reflect.DeepEqual(got[0], records.Record{"a": 1, "b": nil}) {
		t.Fatalf("Project: got %#v", got[0])
	}

	_, err := Project{Columns: []string{"a", "z"}}.Apply([]records.Record{{"a": 1}})
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}
