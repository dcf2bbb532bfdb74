package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridcast_graph_nodes_total",
			Help: "Number of nodes in the deployed infrastructure graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridcast_graph_edges_total",
			Help: "Number of edges in the deployed infrastructure graph",
		},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridcast_graph_build_duration_seconds",
			Help:    "Snapshot-to-graph build latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	r.SnapshotLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridcast_snapshot_loads_total",
			Help: "Total number of snapshot load attempts",
		},
		[]string{"status"},
	)

	r.SnapshotAgeSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridcast_snapshot_age_seconds",
			Help: "Age of the deployed snapshot capture in seconds",
		},
	)
}
