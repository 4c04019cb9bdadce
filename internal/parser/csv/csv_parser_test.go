package csv

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"athletes/internal/records"
)

const biosCSV = "athlete_id,Used name,Born,NOC,Measurements\n" +
	"1,Jean•Blanc,\"12 January 1980 in Paris, France (Île-de-France)\",France,178 cm / 75 kg\n" +
	"2,Ana•Lopez,,Spain,\n"

func TestParse_HeaderAndNulls(t *testing.T) {
	t.Parallel()

	p := NewParser(Options{HasHeader: true})
	got, skipped, err := p.Parse(strings.NewReader(biosCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	want := []records.Record{
		{
			"athlete_id":   "1",
			"used_name":    "Jean•Blanc",
			"born":         "12 January 1980 in Paris, France (Île-de-France)",
			"noc":          "France",
			"measurements": "178 cm / 75 kg",
		},
		{
			"athlete_id":   "2",
			"used_name":    "Ana•Lopez",
			"born":         nil,
			"noc":          "Spain",
			"measurements": nil,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestParse_SkipsWrongWidth(t *testing.T) {
	t.Parallel()

	in := "a,b\n1,2\n3\n4,5,6\n7,8\n"
	got, skipped, err := NewParser(Options{HasHeader: true}).Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if skipped != 2 || len(got) != 2 {
		t.Fatalf("rows=%d skipped=%d, want 2 and 2", len(got), skipped)
	}
}

func TestParse_BOMAndHeaderMap(t *testing.T) {
	t.Parallel()

	in := "\ufeffID,Sex\n7,F\n"
	p := NewParser(Options{HasHeader: true, HeaderMap: map[string]string{"ID": "athlete_id"}})
	got, _, err := p.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []records.Record{{"athlete_id": "7", "sex": "F"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestParse_Windows1252(t *testing.T) {
	t.Parallel()

	enc, err := charmap.Windows1252.NewEncoder().String("athlete_id,Affiliations\n1,Université Paris\n")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	got, _, err := NewParser(Options{HasHeader: true, Encoding: "windows-1252"}).Parse(strings.NewReader(enc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v := got[0]["affiliations"]; v != "Université Paris" {
		t.Fatalf("affiliations = %#v", v)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := NewParser(Options{HasHeader: true}).Parse(strings.NewReader("")); err == nil {
		t.Fatalf("empty input with header: expected error")
	}
	_, _, err := NewParser(Options{Encoding: "ebcdic"}).Parse(strings.NewReader("a"))
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("err = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestParse_NoHeaderSynthesizesKeys(t *testing.T) {
	t.Parallel()

	got, _, err := NewParser(Options{Comma: ';', TrimSpace: true}).Parse(strings.NewReader(" x ;y\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []records.Record{{"col_0": "x", "col_1": "y"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"athlete_id":    "athlete_id",
		"Full name":     "full_name",
		"Title(s)":      "titles",
		"NOC":           "noc",
		"Original name": "original_name",
		"Née / Born":    "nee_born",
		"  ":            "col",
	}
	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}
