// Package metrics records run metrics behind a pluggable Backend. The default
// backend discards everything, so instrumentation is always safe to call;
// cmd/athletes installs Pushgateway or DogStatsD when configured.
package metrics

import (
	"sync"
	"time"
)

// Metric names emitted by the pipeline.
const (
	StageTotal    = "athletes_stage_total"
	StageDuration = "athletes_stage_duration_seconds"
	RowsTotal     = "athletes_rows_total"
)

// Row kinds reported through RecordRows.
const (
	RowsRead    = "read"
	RowsSkipped = "skipped"
	RowsDropped = "dropped"
	RowsWritten = "written"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes buffered metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs b. A nil b restores the no-op backend.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		b = nopBackend{}
	}
	backend = b
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error { return current().Flush() }

// RecordStage counts one execution of a pipeline stage and observes its
// duration, labelled by outcome.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	b := current()
	b.IncCounter(StageTotal, 1, lbls)
	b.ObserveHistogram(StageDuration, d.Seconds(), lbls)
}

// RecordRows adds n rows of the given kind. stage may be empty. Non-positive
// n is ignored.
func RecordRows(job, stage, kind string, n int64) {
	if n <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(n), Labels{"job": job, "stage": stage, "kind": kind})
}
