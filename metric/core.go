package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core store metrics.
type Metrics struct {
	// Write path
	TriplesWritten prometheus.Counter
	TriplesRemoved prometheus.Counter
	BatchFailures  prometheus.Counter

	// Read path
	IndexScans     *prometheus.CounterVec
	RecordsScanned prometheus.Counter

	// Query layer
	QueryDuration *prometheus.HistogramVec
	QueryErrors   *prometheus.CounterVec
	QueryResults  prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with all core metrics
func NewMetrics() *Metrics {
	return &Metrics{
		TriplesWritten: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hexastore",
				Subsystem: "index",
				Name:      "triples_written_total",
				Help:      "Total number of triples inserted across all stores",
			},
		),

		TriplesRemoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hexastore",
				Subsystem: "index",
				Name:      "triples_removed_total",
				Help:      "Total number of triples removed across all stores",
			},
		),

		BatchFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hexastore",
				Subsystem: "index",
				Name:      "batch_failures_total",
				Help:      "Total number of aborted six-index write batches",
			},
		),

		IndexScans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hexastore",
				Subsystem: "index",
				Name:      "scans_total",
				Help:      "Total number of index range scans",
			},
			[]string{"order"},
		),

		RecordsScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "hexastore",
				Subsystem: "index",
				Name:      "records_scanned_total",
				Help:      "Total number of KV records decoded during scans",
			},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hexastore",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Query execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		QueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hexastore",
				Subsystem: "query",
				Name:      "errors_total",
				Help:      "Total number of failed queries",
			},
			[]string{"kind"},
		),

		QueryResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "hexastore",
				Subsystem: "query",
				Name:      "results_per_page",
				Help:      "Number of triples returned per query page",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

// collectors returns every core metric for registration.
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TriplesWritten,
		m.TriplesRemoved,
		m.BatchFailures,
		m.IndexScans,
		m.RecordsScanned,
		m.QueryDuration,
		m.QueryErrors,
		m.QueryResults,
	}
}
