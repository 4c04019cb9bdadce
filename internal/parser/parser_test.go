package parser

import (
	"strings"
	"testing"

	"athletes/internal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	p, err := New(config.Parser{Kind: "csv", Options: config.Options{"comma": ";"}})
	if err != nil {
		t.Fatalf("New(csv): %v", err)
	}
	recs, _, err := p.Parse(strings.NewReader("athlete_id;NOC\n1;France\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 || recs[0]["noc"] != "France" {
		t.Fatalf("unexpected records %#v", recs)
	}

	if _, err := New(config.Parser{Kind: "xlsx"}); err != nil {
		t.Fatalf("New(xlsx): %v", err)
	}
	if _, err := New(config.Parser{Kind: "json"}); err == nil {
		t.Fatalf("New(json): expected error")
	}
}
