// Package metric provides Prometheus instrumentation for geoio load and
// save operations.
//
// A Metrics instance owns its own prometheus.Registry so tests can create
// isolated instances in parallel; callers expose it through their own
// /metrics endpoint.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the core file-I/O metrics.
type Metrics struct {
	registry *prometheus.Registry

	// LoadsTotal counts load operations by resulting error code.
	LoadsTotal *prometheus.CounterVec
	// SavesTotal counts save operations by resulting error code.
	SavesTotal *prometheus.CounterVec
	// LoadDuration observes wall time of load operations.
	LoadDuration prometheus.Histogram
	// SaveDuration observes wall time of save operations.
	SaveDuration prometheus.Histogram
	// PanicsRecovered counts filter panics contained by the orchestrator.
	PanicsRecovered prometheus.Counter
}

// New creates a Metrics instance with its own registry, including Go
// runtime collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		LoadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geoio_loads_total",
			Help: "Load operations by resulting error code",
		}, []string{"code"}),
		SavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geoio_saves_total",
			Help: "Save operations by resulting error code",
		}, []string{"code"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geoio_load_duration_seconds",
			Help:    "Wall time of load operations",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geoio_save_duration_seconds",
			Help:    "Wall time of save operations",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		PanicsRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geoio_filter_panics_recovered_total",
			Help: "Filter panics contained by the orchestrator",
		}),
	}

	registry.MustRegister(
		m.LoadsTotal,
		m.SavesTotal,
		m.LoadDuration,
		m.SaveDuration,
		m.PanicsRecovered,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying Prometheus registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveLoad records one load outcome. Safe on a nil receiver so metrics
// stay optional for library callers.
func (m *Metrics) ObserveLoad(code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LoadsTotal.WithLabelValues(code).Inc()
	m.LoadDuration.Observe(elapsed.Seconds())
}

// ObserveSave records one save outcome. Safe on a nil receiver.
func (m *Metrics) ObserveSave(code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SavesTotal.WithLabelValues(code).Inc()
	m.SaveDuration.Observe(elapsed.Seconds())
}

// ObservePanic records one contained filter panic. Safe on a nil receiver.
func (m *Metrics) ObservePanic() {
	if m == nil {
		return
	}
	m.PanicsRecovered.Inc()
}
