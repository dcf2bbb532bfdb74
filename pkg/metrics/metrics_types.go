package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Prediction Metrics
	PredictionsTotal            *prometheus.CounterVec
	PredictionDuration          *prometheus.HistogramVec
	AffectedNodesPerPrediction  prometheus.Histogram
	PredictionProbability       prometheus.Histogram

	// Graph Metrics
	GraphNodesTotal    prometheus.Gauge
	GraphEdgesTotal    prometheus.Gauge
	GraphBuildDuration prometheus.Histogram
	SnapshotLoadsTotal *prometheus.CounterVec
	SnapshotAgeSeconds prometheus.Gauge

	// What-If Metrics
	WhatIfSweepsTotal       *prometheus.CounterVec
	WhatIfSweepDuration     prometheus.Histogram
	WhatIfCandidatesPerSweep prometheus.Histogram

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initPredictionMetrics()
	r.initGraphMetrics()
	r.initWhatIfMetrics()
	r.initHTTPMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
