package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initWhatIfMetrics() {
	r.WhatIfSweepsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridcast_whatif_sweeps_total",
			Help: "Total number of what-if sweeps",
		},
		[]string{"status"},
	)

	r.WhatIfSweepDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridcast_whatif_sweep_duration_seconds",
			Help:    "What-if sweep latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
	)

	r.WhatIfCandidatesPerSweep = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridcast_whatif_candidates_per_sweep",
			Help:    "Number of candidate failures evaluated per sweep",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)
}
