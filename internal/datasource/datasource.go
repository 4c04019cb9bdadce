// Package datasource abstracts where the raw athlete table is read from.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw input for a single read.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
