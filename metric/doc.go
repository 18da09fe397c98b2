// Package metric provides Prometheus-based metrics collection for the
// hexastore core.
//
// The package offers a centralized registry managing core store metrics
// (triples written and removed, index scans, query latency, query
// errors) plus extensible registration for caller-specific metrics. The
// scrape endpoint belongs to the embedding service; this package only
// owns the registry.
//
// # Basic Usage
//
//	registry := metric.NewRegistry()
//	registry.Core.TriplesWritten.Inc()
//
// Callers expose registry.PrometheusRegistry() through their own
// HTTP handler when they want a scrape surface.
package metric
