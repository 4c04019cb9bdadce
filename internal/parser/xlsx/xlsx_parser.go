// Package xlsx reads the raw athlete table from the first (or a named)
// worksheet of an Excel workbook.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	csvparser "athletes/internal/parser/csv"
	"athletes/internal/records"
)

// Options configures the workbook reader.
type Options struct {
	// Sheet names the worksheet; empty selects the first sheet.
	Sheet string

	// HeaderMap maps header cells to canonical keys, as for CSV.
	HeaderMap map[string]string
}

// Parser reads one worksheet. The first row is the header.
type Parser struct{ opt Options }

// NewParser constructs a Parser.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the worksheet into records. Cells missing at the end of a short
// row are null; rows wider than the header are skipped and counted.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := p.opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, 0, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("sheet %q has no header row", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if m, ok := p.opt.HeaderMap[h]; ok {
			headers[i] = m
			continue
		}
		headers[i] = csvparser.NormalizeHeader(h)
	}

	var out []records.Record
	skipped := 0
	for _, row := range rows[1:] {
		if len(row) > len(headers) {
			skipped++
			continue
		}
		rec := make(records.Record, len(headers))
		blank := true
		for i, key := range headers {
			var v any
			if i < len(row) && row[i] != "" {
				v = row[i]
				blank = false
			}
			rec[key] = v
		}
		if blank {
			continue
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}
