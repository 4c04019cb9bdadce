package bio

import "testing"

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		want   float64
		wantOK bool
	}{
		{"empty", nil, 0, false},
		{"single", []float64{180}, 180, true},
		{"clear winner", []float64{170, 180, 180, 175}, 180, true},
		{"tie goes to first seen", []float64{1, 2, 2, 1}, 1, true},
		{"tie with later run", []float64{3, 4, 4, 3, 5}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Mode(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{1.25, 1, 1.2},
		{1.35, 1, 1.4},
		{178.25, 1, 178.2},
		{178.26, 1, 178.3},
		{80.04, 1, 80.0},
		{-1.25, 1, -1.2},
		{12.345, -1, 12.345},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.in, tt.places); got != tt.want {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}
