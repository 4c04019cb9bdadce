package sink

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"athletes/internal/records"
	"athletes/internal/schema"
)

const defaultSheet = "Sheet1"

// XLSXFile writes the table to one worksheet using excelize's stream writer.
// Dates are written as YYYY-MM-DD text, floats as numbers, nulls as empty
// cells.
type XLSXFile struct {
	Path  string
	Sheet string
}

func (x *XLSXFile) Name() string { return "xlsx:" + x.Path }

func (x *XLSXFile) Write(ctx context.Context, s schema.Schema, rows []records.Record) (Staged, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return Staged{}, fmt.Errorf("xlsx sink: sheet %q: %w", sheet, err)
		}
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return Staged{}, fmt.Errorf("xlsx sink: stream writer: %w", err)
	}

	header := make([]any, len(s))
	for i, name := range s.Names() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return Staged{}, fmt.Errorf("xlsx sink: header: %w", err)
	}

	var n int64
	for i, r := range rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Staged{}, err
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return Staged{}, err
		}
		if err := sw.SetRow(cell, cells(s, r)); err != nil {
			return Staged{}, fmt.Errorf("xlsx sink: row %d: %w", i, err)
		}
		n++
	}
	if err := sw.Flush(); err != nil {
		return Staged{}, fmt.Errorf("xlsx sink: flush: %w", err)
	}

	return stage(x.Path, func(out *os.File) (int64, error) {
		if _, err := f.WriteTo(out); err != nil {
			return 0, fmt.Errorf("xlsx sink: write: %w", err)
		}
		return n, nil
	})
}

func cells(s schema.Schema, r records.Record) []any {
	out := make([]any, len(s))
	for i, c := range s {
		switch v := r[c.Name].(type) {
		case nil:
			out[i] = nil
		case float64:
			out[i] = v
		default:
			out[i] = schema.Format(v)
		}
	}
	return out
}
