package bio

import (
	"reflect"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestParseMeasurements(t *testing.T) {
	tests := []struct {
		in         string
		wantKind   MeasurementKind
		wantHeight *float64
		wantWeight *float64
	}{
		{"178 cm", MeasureOne, f64(178), nil},
		{"75 kg", MeasureOne, nil, f64(75)},
		{"178 cm / 75 kg", MeasureTwo, f64(178), f64(75)},
		{"183.5 cm/80.2 kg", MeasureTwo, f64(183.5), f64(80.2)},
		// Two fragments are positional; units are not used to reorder them.
		{"75 kg / 178 cm", MeasureTwo, f64(75), f64(178)},
		{"178", MeasureEmpty, nil, nil},
		{"", MeasureEmpty, nil, nil},
		{"tall cm", MeasureOne, nil, nil},
		{"178 cm / ", MeasureTwo, f64(178), nil},
		{"? cm / ? kg", MeasureTwo, nil, nil},
		{"1 / 2 / 3", MeasureTwo, f64(1), nil},
		{"NaN cm", MeasureOne, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m := ParseMeasurements(tt.in)
			if m.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v", m.Kind, tt.wantKind)
			}
			h, w := m.Resolve()
			if !reflect.DeepEqual(h, tt.wantHeight) || !reflect.DeepEqual(w, tt.wantWeight) {
				t.Fatalf("Resolve() = %v, %v; want %v, %v", deref64(h), deref64(w), deref64(tt.wantHeight), deref64(tt.wantWeight))
			}
		})
	}
}

func deref64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestMeasurementOneCarriesUnit(t *testing.T) {
	m := ParseMeasurements("62 kg")
	if m.Kind != MeasureOne || m.Unit != UnitKilograms || !reflect.DeepEqual(m.Amount, f64(62)) {
		t.Fatalf("ParseMeasurements(62 kg) = %+v", m)
	}
	if m.Kind.String() != "one" {
		t.Fatalf("Kind.String() = %q", m.Kind.String())
	}
}

func TestMeasurementEmptyResolvesToNulls(t *testing.T) {
	var m Measurement
	if h, w := m.Resolve(); h != nil || w != nil {
		t.Fatalf("zero Measurement resolved to %v, %v", h, w)
	}
	if m.Kind.String() != "empty" {
		t.Fatalf("Kind.String() = %q", m.Kind.String())
	}
}
