package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"athletes/internal/metrics"
)

func counterValue(t *testing.T, v *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := v.WithLabelValues(labels...).Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend("bios", "", ""); err == nil {
		t.Fatalf("expected error for missing gateway URL")
	}
	b, err := NewBackend("", "r1", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.jobName != "athletes" {
		t.Fatalf("jobName = %q, want default athletes", b.jobName)
	}
}

func TestIncCounterAndHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("bios", "", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	b.IncCounter(metrics.StageTotal, 1, metrics.Labels{"stage": "dedup", "status": "success"})
	b.IncCounter(metrics.StageTotal, 2, metrics.Labels{"stage": "dedup", "status": "success"})
	b.IncCounter(metrics.RowsTotal, 5, metrics.Labels{"stage": "require", "kind": "dropped"})
	b.IncCounter("unknown_metric", 9, nil)
	b.ObserveHistogram(metrics.StageDuration, 0.25, metrics.Labels{"stage": "dedup", "status": "success"})
	b.ObserveHistogram("unknown_metric", 1, nil)

	if got := counterValue(t, b.stageCounter, "dedup", "success"); got != 3 {
		t.Fatalf("stage counter = %v, want 3", got)
	}
	if got := counterValue(t, b.rowCounter, "require", "dropped"); got != 5 {
		t.Fatalf("row counter = %v, want 5", got)
	}

	m := &dto.Metric{}
	h, ok := b.stageDuration.WithLabelValues("dedup", "success").(prometheus.Metric)
	if !ok {
		t.Fatalf("histogram does not implement prometheus.Metric")
	}
	if err := h.Write(m); err != nil {
		t.Fatalf("Histogram.Write: %v", err)
	}
	if m.GetHistogram().GetSampleCount() != 1 || m.GetHistogram().GetSampleSum() != 0.25 {
		t.Fatalf("histogram = %v", m.GetHistogram())
	}
}

func TestFlush(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		method string
		path   string
		body   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, path, body = r.Method, r.URL.Path, string(b)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	b, err := NewBackend("bios", "run-1", server.URL)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	b.IncCounter(metrics.RowsTotal, 10, metrics.Labels{"stage": "", "kind": "read"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut {
		t.Fatalf("method = %s, want PUT", method)
	}
	if path != "/metrics/job/bios/run_id/run-1" {
		t.Fatalf("path = %s", path)
	}
	if body == "" {
		t.Fatalf("empty push body")
	}
}

func TestFlushServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	b, err := NewBackend("bios", "", server.URL)
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if err := b.Flush(); err == nil || !strings.Contains(err.Error(), "prompush") {
		t.Fatalf("err = %v, want prompush push error", err)
	}
}
