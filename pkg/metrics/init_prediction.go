package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPredictionMetrics() {
	r.PredictionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridcast_predictions_total",
			Help: "Total number of impact predictions",
		},
		[]string{"failure_type", "status"},
	)

	r.PredictionDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridcast_prediction_duration_seconds",
			Help:    "Impact prediction latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"failure_type"},
	)

	r.AffectedNodesPerPrediction = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridcast_affected_nodes_per_prediction",
			Help:    "Number of nodes crossing the acceptance threshold per prediction",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	r.PredictionProbability = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridcast_prediction_probability",
			Help:    "Impact probabilities of accepted nodes",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		},
	)
}
