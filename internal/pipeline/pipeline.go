// Package pipeline runs one batch normalization: open the source, parse it
// into records, apply the transform chain, then write every sink.
//
// The chain runs single-threaded over the whole table; only the sinks run
// concurrently. File sinks stage their output in a temp file, and the run
// renames it into place only once every sink has succeeded, so a failed run
// leaves no output file.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"athletes/internal/config"
	"athletes/internal/datasource/file"
	"athletes/internal/metrics"
	"athletes/internal/parser"
	"athletes/internal/records"
	"athletes/internal/schema"
	"athletes/internal/sink"
	"athletes/internal/transformer"
)

// Options tune a run.
type Options struct {
	// RunID labels logs and metrics. A random UUID is used when empty.
	RunID string

	// Verbose logs every transform step.
	Verbose bool
}

// Run executes p and reports what happened. The Report is filled as far as
// the run got, even on error.
func Run(ctx context.Context, p config.Pipeline, opt Options) (rep Report, err error) {
	rep = Report{RunID: opt.RunID, Job: p.Job}
	if rep.RunID == "" {
		rep.RunID = uuid.NewString()
	}
	start := time.Now()
	defer func() { rep.Duration = time.Since(start) }()

	rows, err := read(ctx, p, &rep, opt.Verbose)
	if err != nil {
		return rep, err
	}

	transforms := p.Transform
	if len(transforms) == 0 {
		transforms = transformer.DefaultTransforms()
	}
	chain, err := transformer.Build(transforms)
	if err != nil {
		return rep, err
	}
	if rows, err = rep.apply(chain, rows, opt.Verbose); err != nil {
		return rep, err
	}

	out := schema.Default().Select(outputColumns(transforms))
	sinks, err := buildSinks(p)
	if err != nil {
		return rep, err
	}
	if err := rep.write(ctx, sinks, out, rows); err != nil {
		return rep, err
	}
	return rep, nil
}

func read(ctx context.Context, p config.Pipeline, rep *Report, verbose bool) ([]records.Record, error) {
	t0 := time.Now()
	if p.Source.Kind != "file" {
		return nil, fmt.Errorf("unsupported source.kind=%q", p.Source.Kind)
	}
	rc, err := file.NewLocal(p.Source.File.Path).Open(ctx)
	if err != nil {
		metrics.RecordStage(p.Job, "read", err, time.Since(t0))
		return nil, err
	}
	defer rc.Close()
	if in, ok := rc.(interface{ Size() int64 }); ok && verbose {
		log.Printf("read: source=%s size=%s", p.Source.File.Path, humanize.Bytes(uint64(in.Size())))
	}

	prs, err := parser.New(p.Parser)
	if err != nil {
		return nil, err
	}
	rows, skipped, err := prs.Parse(rc)
	metrics.RecordStage(p.Job, "read", err, time.Since(t0))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.Source.File.Path, err)
	}
	rep.Read, rep.Skipped = len(rows), skipped
	metrics.RecordRows(p.Job, "read", metrics.RowsRead, int64(len(rows)))
	metrics.RecordRows(p.Job, "read", metrics.RowsSkipped, int64(skipped))
	log.Printf("read: source=%s rows=%d skipped=%d", p.Source.File.Path, len(rows), skipped)
	return rows, nil
}

func (rep *Report) apply(chain transformer.Chain, rows []records.Record, verbose bool) ([]records.Record, error) {
	for _, step := range chain {
		t0 := time.Now()
		in := len(rows)
		out, err := step.Apply(rows)
		d := time.Since(t0)
		metrics.RecordStage(rep.Job, step.Name, err, d)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", step.Name, err)
		}
		rows = out
		rep.Steps = append(rep.Steps, StepReport{Name: step.Name, In: in, Out: len(rows), Duration: d})
		metrics.RecordRows(rep.Job, step.Name, metrics.RowsDropped, int64(in-len(rows)))
		if verbose {
			log.Printf("%s: in=%d out=%d took=%s", step.Name, in, len(rows), d.Truncate(time.Microsecond))
		}
	}
	return rows, nil
}

// write runs the sinks concurrently; they only read the records. File
// output is published after every sink has succeeded and discarded
// otherwise. Database batches are committed as they load and are not
// reverted.
func (rep *Report) write(ctx context.Context, sinks []sink.Sink, s schema.Schema, rows []records.Record) error {
	staged := make([]sink.Staged, len(sinks))
	g, gctx := errgroup.WithContext(ctx)
	for i, sk := range sinks {
		i, sk := i, sk
		g.Go(func() error {
			t0 := time.Now()
			st, err := sk.Write(gctx, s, rows)
			metrics.RecordStage(rep.Job, "write", err, time.Since(t0))
			if err != nil {
				return fmt.Errorf("write %s: %w", sk.Name(), err)
			}
			staged[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, st := range staged {
			st.Discard()
		}
		return err
	}

	for i, sk := range sinks {
		if err := staged[i].Commit(); err != nil {
			for _, st := range staged[i+1:] {
				st.Discard()
			}
			return fmt.Errorf("publish %s: %w", sk.Name(), err)
		}
		n := staged[i].Rows
		rep.Written = append(rep.Written, SinkReport{Name: sk.Name(), Rows: n})
		metrics.RecordRows(rep.Job, sk.Name(), metrics.RowsWritten, n)
		log.Printf("write: sink=%s rows=%d", sk.Name(), n)
	}
	return nil
}

func buildSinks(p config.Pipeline) ([]sink.Sink, error) {
	fs, err := sink.FromOutput(p.Output)
	if err != nil {
		return nil, err
	}
	sinks := []sink.Sink{fs}
	if db := sink.FromStorage(p.Storage); db != nil {
		sinks = append(sinks, db)
	}
	return sinks, nil
}

// outputColumns returns the columns of the last project step, or the default
// layout when there is none or it lists no columns.
func outputColumns(ts []config.Transform) []string {
	for i := len(ts) - 1; i >= 0; i-- {
		if ts[i].Kind != "project" {
			continue
		}
		if cols := ts[i].Options.StringSlice("columns"); len(cols) > 0 {
			return cols
		}
		break
	}
	return schema.Default().Names()
}
