package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quake_eda"

// Metrics holds the Prometheus counters, histograms, and gauges for a report run.
type Metrics struct {
	RecordsLoaded  prometheus.Counter
	RecordsDerived prometheus.Counter
	RecordsDropped *prometheus.CounterVec // labels: reason

	// Stage timings.
	StageDuration *prometheus.HistogramVec // labels: stage={load,derive,analyze,write}
	LastRunTime   prometheus.Gauge

	TestsRun       *prometheus.CounterVec // labels: test, outcome={valid,invalid,insufficient_data}
	EphemerisCache *prometheus.CounterVec // labels: result={hit,miss}

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	return newMetrics(reg, reg)
}

func newMetrics(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Catalog rows read from the source.",
		}),
		RecordsDerived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_derived_total",
			Help:      "Rows that survived derivation and entered the analysis.",
		}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Rows excluded during derivation, by reason.",
		}, []string{"reason"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last report run finished.",
		}),
		TestsRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tests_run_total",
			Help:      "Hypothesis tests by test and outcome.",
		}, []string{"test", "outcome"}),
		EphemerisCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ephemeris_cache_total",
			Help:      "Sun event cache lookups by result.",
		}, []string{"result"}),
		gatherer: g,
	}

	reg.MustRegister(
		m.RecordsLoaded,
		m.RecordsDerived,
		m.RecordsDropped,
		m.StageDuration,
		m.LastRunTime,
		m.TestsRun,
		m.EphemerisCache,
	)

	return m
}

// EphemerisLookup counts one sun event cache lookup.
func (m *Metrics) EphemerisLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.EphemerisCache.WithLabelValues(result).Inc()
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format read by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
