package schema

import (
	"reflect"
	"testing"
	"time"

	"athletes/internal/records"
)

func TestDefaultNames(t *testing.T) {
	want := []string{
		"athlete_id", "name", "sex", "birth_date", "city", "region", "country",
		"noc", "height_cm", "weight_kg", "roles", "affiliations",
	}
	if got := Default().Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Paris", "Paris"},
		{time.Date(1980, 1, 12, 0, 0, 0, 0, time.UTC), "1980-01-12"},
		{178.5, "178.5"},
		{80.0, "80.0"},
		{7, "7"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringsAndValues(t *testing.T) {
	s := Schema{{Name: "a", Kind: KindText}, {Name: "d", Kind: KindDate}, {Name: "h", Kind: KindFloat}}
	d := time.Date(1975, 1, 1, 0, 0, 0, 0, time.UTC)
	r := records.Record{"a": "x", "d": d, "h": nil, "extra": "ignored"}

	if got, want := s.Strings(r), []string{"x", "1975-01-01", ""}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Strings() = %q, want %q", got, want)
	}
	if got, want := s.Values(r), []any{"x", d, nil}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %#v, want %#v", got, want)
	}
}

func TestSelect(t *testing.T) {
	got := Default().Select([]string{NOC, "medal", BirthDate})
	want := Schema{
		{Name: NOC, Kind: KindText},
		{Name: "medal", Kind: KindText, Nullable: true},
		{Name: BirthDate, Kind: KindDate},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Select() = %+v, want %+v", got, want)
	}
}
