package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is used when the pipeline leaves batch_size at zero.
const DefaultBatchSize = 1000

// CopyFn abstracts a backend's bulk insert. It must cancel promptly when ctx
// is done.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches drains rows from in, groups them into batches of batchSize and
// calls copyFn per non-empty batch. It returns the total reported by copyFn
// and the first error encountered. Progress is logged on each flush.
func LoadBatches(
	ctx context.Context,
	columns []string,
	in <-chan []any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}

	var (
		total   int64
		batches int64
		batch   = make([][]any, 0, batchSize)
		start   = time.Now()
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, columns, batch)
		total += n
		// Rows were handed to copyFn; start a fresh backing array.
		batch = make([][]any, 0, batchSize)
		if err != nil {
			log.Printf("loader: copy failed after=%d total=%d err=%v", n, total, err)
			return err
		}
		batches++
		log.Printf("loader: batch #%d inserted=%d total_inserted=%d elapsed=%s",
			batches, n, total, time.Since(start).Truncate(time.Millisecond))
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case row, ok := <-in:
			if !ok {
				if err := flush(); err != nil {
					return total, err
				}
				return total, nil
			}
			batch = append(batch, row)
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}
}

// Load streams rows into repo in batches. A producer goroutine feeds the
// loader through a small channel; whichever side fails first cancels the
// other.
func Load(ctx context.Context, repo Repository, columns []string, rows [][]any, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	g, gctx := errgroup.WithContext(ctx)
	ch := make(chan []any, batchSize)

	g.Go(func() error {
		defer close(ch)
		for _, r := range rows {
			select {
			case ch <- r:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var total int64
	g.Go(func() error {
		var err error
		total, err = LoadBatches(gctx, columns, ch, batchSize, repo.CopyFrom)
		return err
	})

	err := g.Wait()
	return total, err
}
