package datadog

import (
	"reflect"
	"testing"

	"athletes/internal/metrics"
)

type fakeClient struct {
	counts  map[string]int64
	hists   map[string]float64
	tags    [][]string
	flushed bool
	closed  bool
}

func newFake() *fakeClient {
	return &fakeClient{counts: map[string]int64{}, hists: map[string]float64{}}
}

func (f *fakeClient) Count(name string, v int64, tags []string, _ float64) error {
	f.counts[name] += v
	f.tags = append(f.tags, tags)
	return nil
}

func (f *fakeClient) Histogram(name string, v float64, tags []string, _ float64) error {
	f.hists[name] = v
	f.tags = append(f.tags, tags)
	return nil
}

func (f *fakeClient) Flush() error { f.flushed = true; return nil }
func (f *fakeClient) Close() error { f.closed = true; return nil }

func TestNewBackend_RequiresAddr(t *testing.T) {
	if _, err := NewBackend(Config{}); err == nil {
		t.Fatalf("expected error for empty Addr")
	}
}

func TestNewBackend_UDP(t *testing.T) {
	// UDP needs no listener to construct a client.
	b, err := NewBackend(Config{Addr: "127.0.0.1:8125", Namespace: "athletes.", Tags: []string{"env:test"}})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestBackendForwards(t *testing.T) {
	fc := newFake()
	b := &Backend{client: fc}

	b.IncCounter(metrics.RowsTotal, 7, metrics.Labels{"kind": "read", "job": "bios", "stage": ""})
	b.ObserveHistogram(metrics.StageDuration, 0.5, metrics.Labels{"stage": "parse"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if fc.counts[metrics.RowsTotal] != 7 {
		t.Fatalf("count = %d, want 7", fc.counts[metrics.RowsTotal])
	}
	if fc.hists[metrics.StageDuration] != 0.5 {
		t.Fatalf("histogram = %v, want 0.5", fc.hists[metrics.StageDuration])
	}
	if want := []string{"job:bios", "kind:read"}; !reflect.DeepEqual(fc.tags[0], want) {
		t.Fatalf("tags = %v, want %v", fc.tags[0], want)
	}
	if !fc.flushed || !fc.closed {
		t.Fatalf("Flush should flush and close the client")
	}
}
