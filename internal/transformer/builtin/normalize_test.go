package builtin

import (
	"reflect"
	"testing"

	"athletes/internal/records"
)

func TestNormalizeApply_TableDriven(t *testing.T) {
	tests := []struct {
		name string
		in   records.Record
		want records.Record
	}{
		{
			name: "non_strings_untouched",
			in:   records.Record{"a": 1, "b": 1.5, "c": nil},
			want: records.Record{"a": 1, "b": 1.5, "c": nil},
		},
		{
			name: "trim",
			in:   records.Record{"a": " Paris ", "b": "\tFRA\n"},
			want: records.Record{"a": "Paris", "b": "FRA"},
		},
		{
			name: "nbsp_and_mojibake",
			in:   records.Record{"a": "178\u00a0cm", "b": "75\u00c2\u00a0kg"},
			want: records.Record{"a": "178 cm", "b": "75 kg"},
		},
		{
			name: "blank_becomes_null",
			in:   records.Record{"a": "   ", "b": " "},
			want: records.Record{"a": nil, "b": nil},
		},
		{
			name: "nfc",
			in:   records.Record{"a": "I\u0302le-de-France"},
			want: records.Record{"a": "\u00cele-de-France"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, Normalize{}, []records.Record{tt.in})
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Fatalf("got %#v want %#v", got[0], tt.want)
			}
		})
	}
}
