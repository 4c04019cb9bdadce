// Package parser turns raw input bytes into records.
package parser

import (
	"fmt"
	"io"

	"athletes/internal/config"
	csvparser "athletes/internal/parser/csv"
	xlsxparser "athletes/internal/parser/xlsx"
	"athletes/internal/records"
)

// Parser reads a whole table. skipped counts rows that could not be read.
type Parser interface {
	Parse(r io.Reader) (recs []records.Record, skipped int, err error)
}

// New builds the parser selected by cfg.Kind.
func New(cfg config.Parser) (Parser, error) {
	switch cfg.Kind {
	case "csv":
		return csvparser.NewParser(csvparser.Options{
			HasHeader: cfg.Options.Bool("has_header", true),
			Comma:     cfg.Options.Rune("comma", ','),
			TrimSpace: cfg.Options.Bool("trim_space", false),
			Encoding:  cfg.Options.String("encoding", ""),
			HeaderMap: cfg.Options.StringMap("header_map"),
		}), nil
	case "xlsx":
		return xlsxparser.NewParser(xlsxparser.Options{
			Sheet:     cfg.Options.String("sheet", ""),
			HeaderMap: cfg.Options.StringMap("header_map"),
		}), nil
	}
	return nil, fmt.Errorf("parser: unknown kind %q", cfg.Kind)
}
