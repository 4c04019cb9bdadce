// Package file reads the raw athlete table from the local filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegular is returned when the path names a directory or device.
var ErrNotRegular = errors.New("file: not a regular file")

// Local is a filesystem data source bound to one path.
type Local struct{ path string }

// NewLocal returns a Local data source for path.
func NewLocal(path string) *Local { return &Local{path: path} }

func (l *Local) Path() string { return l.path }

// Input is an open input file. Size is the byte length at open time.
type Input struct {
	*os.File
	size int64
}

func (in *Input) Size() int64 { return in.size }

// Open opens the path for reading. Errors carry the path and still match
// errors.Is(err, os.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", l.path, err)
	}
	if !st.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", l.path, ErrNotRegular)
	}
	return &Input{File: f, size: st.Size()}, nil
}
