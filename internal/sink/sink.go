// Package sink writes the cleaned table to its destinations: a CSV or XLSX
// file and, optionally, a database table.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"athletes/internal/config"
	"athletes/internal/records"
	"athletes/internal/schema"
)

// Sink persists the projected table. Write prepares the output and returns
// it as Staged; a file sink's destination is untouched until Commit.
type Sink interface {
	Name() string
	Write(ctx context.Context, s schema.Schema, rows []records.Record) (Staged, error)
}

// Staged is a finished write waiting to be published. The zero value has
// nothing to publish or discard.
type Staged struct {
	Rows int64

	publish func() error
	discard func()
}

// Commit publishes the output.
func (st Staged) Commit() error {
	if st.publish == nil {
		return nil
	}
	return st.publish()
}

// Discard drops unpublished output. It is safe after Commit.
func (st Staged) Discard() {
	if st.discard != nil {
		st.discard()
	}
}

// FromOutput returns the file sink for out. The format comes from
// out.Format, or the path extension when unset.
func FromOutput(out config.Output) (Sink, error) {
	format := strings.ToLower(strings.TrimSpace(out.Format))
	if format == "" {
		format = "csv"
		if strings.EqualFold(filepath.Ext(out.Path), ".xlsx") {
			format = "xlsx"
		}
	}
	switch format {
	case "csv":
		return &CSVFile{Path: out.Path}, nil
	case "xlsx":
		return &XLSXFile{Path: out.Path, Sheet: out.Sheet}, nil
	}
	return nil, fmt.Errorf("sink: unsupported output format %q", out.Format)
}

// stage calls fill with a temp file next to path. On success the closed temp
// file is kept and the returned Staged renames it over path on Commit; on
// failure it is removed.
func stage(path string, fill func(f *os.File) (int64, error)) (Staged, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return Staged{}, fmt.Errorf("create temp in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	n, err := fill(tmp)
	if cerr := tmp.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close %s: %w", tmpName, cerr)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return Staged{}, err
	}

	discard := func() { _ = os.Remove(tmpName) }
	return Staged{
		Rows: n,
		publish: func() error {
			if err := os.Rename(tmpName, path); err != nil {
				discard()
				return fmt.Errorf("rename %s: %w", path, err)
			}
			return nil
		},
		discard: discard,
	}, nil
}
