package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// fetch/cache pipeline.
type Metrics struct {
	CensusRequests *prometheus.CounterVec   // labels: scope={state,county}, outcome={success,error}
	CensusDuration *prometheus.HistogramVec // labels: scope={state,county}
	CacheLookups   *prometheus.CounterVec   // labels: scope, result={hit,miss,expired,error}
	CacheWrites    *prometheus.CounterVec   // labels: scope, outcome={success,error}
	RowsSkipped    prometheus.Counter
	RecordsServed  prometheus.Counter
	Exports        *prometheus.CounterVec // labels: format={csv,pdf}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.CensusRequests,
		m.CensusDuration,
		m.CacheLookups,
		m.CacheWrites,
		m.RowsSkipped,
		m.RecordsServed,
		m.Exports,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CensusRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sdoh",
			Name:      "census_requests_total",
			Help:      "Census API requests by scope and outcome.",
		}, []string{"scope", "outcome"}),
		CensusDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sdoh",
			Name:      "census_request_duration_seconds",
			Help:      "Census API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"scope"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sdoh",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by scope and result.",
		}, []string{"scope", "result"}),
		CacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sdoh",
			Name:      "cache_writes_total",
			Help:      "Cache write-throughs by scope and outcome.",
		}, []string{"scope", "outcome"}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sdoh",
			Name:      "rows_skipped_total",
			Help:      "Source rows dropped during normalization.",
		}),
		RecordsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sdoh",
			Name:      "records_served_total",
			Help:      "Normalized records returned to callers.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sdoh",
			Name:      "exports_total",
			Help:      "Export documents generated by format.",
		}, []string{"format"}),
	}
}
