package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New(nil)
	m.FileLoaded(10)
	m.FileLoaded(5)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.IncludeSpliced()
	m.RepeatsRemoved(2)
	m.RepeatsRemoved(0)
	m.Warning("multiple-same-includes")
	m.Failure("infinite-recursion")

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"files", testutil.ToFloat64(m.filesLoaded), 2},
		{"bytes", testutil.ToFloat64(m.bytesRead), 15},
		{"hits", testutil.ToFloat64(m.cacheHits), 1},
		{"misses", testutil.ToFloat64(m.cacheMisses), 2},
		{"spliced", testutil.ToFloat64(m.includesSpliced), 1},
		{"repeats", testutil.ToFloat64(m.repeatsRemoved), 2},
		{"warnings", testutil.ToFloat64(m.warnings.WithLabelValues("multiple-same-includes")), 1},
		{"failures", testutil.ToFloat64(m.failures.WithLabelValues("infinite-recursion")), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	m := New(nil)
	m.CacheHit()
	m.ObserveResolve(3 * time.Millisecond)

	var buf bytes.Buffer
	if err := m.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"glslx_cache_hits_total 1", "glslx_resolve_duration_seconds_count 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.FileLoaded(1)
	m.CacheHit()
	m.Warning("x")
	if err := m.WriteText(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil metrics must be silent: %v", err)
	}
	if m.Registry() != nil {
		t.Fatalf("nil metrics has no registry")
	}
}
