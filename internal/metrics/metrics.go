// Package metrics counts what the expander does: files read, cache hits,
// includes spliced, repeats removed, warnings and failures by kind.
//
// Metrics are registered on a private prometheus.Registry, never the global
// one, so several resolvers and tests can each own a set. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "glslx"

// Metrics groups the expander collectors.
type Metrics struct {
	registry *prometheus.Registry

	filesLoaded     prometheus.Counter
	bytesRead       prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	includesSpliced prometheus.Counter
	repeatsRemoved  prometheus.Counter
	warnings        *prometheus.CounterVec
	failures        *prometheus.CounterVec
	resolveDuration prometheus.Histogram
}

// New creates and registers the collectors. If registry is nil a fresh one
// is used.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		filesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Files read from the filesystem and expanded",
		}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_bytes_total",
			Help:      "Raw bytes read before comment stripping",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Resolutions answered from the resolver cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Resolutions that had to load the file",
		}),
		includesSpliced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "includes_spliced_total",
			Help:      "Include directives replaced by file content",
		}),
		repeatsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repeats_removed_total",
			Help:      "Repeated includes deleted by the DeleteRepeats policy",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Warnings recorded, by kind",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed resolutions, by error kind",
		}, []string{"kind"}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Duration of top-level resolve requests",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	registry.MustRegister(
		m.filesLoaded,
		m.bytesRead,
		m.cacheHits,
		m.cacheMisses,
		m.includesSpliced,
		m.repeatsRemoved,
		m.warnings,
		m.failures,
		m.resolveDuration,
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) FileLoaded(size int) {
	if m == nil {
		return
	}
	m.filesLoaded.Inc()
	m.bytesRead.Add(float64(size))
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) IncludeSpliced() {
	if m == nil {
		return
	}
	m.includesSpliced.Inc()
}

func (m *Metrics) RepeatsRemoved(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.repeatsRemoved.Add(float64(n))
}

func (m *Metrics) Warning(kind string) {
	if m == nil {
		return
	}
	m.warnings.WithLabelValues(kind).Inc()
}

func (m *Metrics) Failure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}

// ObserveResolve records the duration of a top-level request.
func (m *Metrics) ObserveResolve(d time.Duration) {
	if m == nil {
		return
	}
	m.resolveDuration.Observe(d.Seconds())
}

// WriteText dumps every family in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
