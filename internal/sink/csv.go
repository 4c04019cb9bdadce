package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"athletes/internal/records"
	"athletes/internal/schema"
)

// CSVFile writes a comma-separated file with a header row and no index
// column. Nulls are written as empty cells.
type CSVFile struct {
	Path string
}

func (c *CSVFile) Name() string { return "csv:" + c.Path }

func (c *CSVFile) Write(ctx context.Context, s schema.Schema, rows []records.Record) (Staged, error) {
	return stage(c.Path, func(f *os.File) (int64, error) {
		w := csv.NewWriter(f)
		if err := w.Write(s.Names()); err != nil {
			return 0, fmt.Errorf("csv sink: header: %w", err)
		}
		var n int64
		for i, r := range rows {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return 0, err
				}
			}
			if err := w.Write(s.Strings(r)); err != nil {
				return 0, fmt.Errorf("csv sink: row %d: %w", i, err)
			}
			n++
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return 0, fmt.Errorf("csv sink: flush: %w", err)
		}
		return n, nil
	})
}
