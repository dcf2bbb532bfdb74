package metrics

import (
	"time"
)

// RecordPrediction records one impact prediction with its outcome
func (r *Registry) RecordPrediction(failureType, status string, duration time.Duration, affected int) {
	r.PredictionsTotal.WithLabelValues(failureType, status).Inc()
	r.PredictionDuration.WithLabelValues(failureType).Observe(duration.Seconds())
	if status == "success" {
		r.AffectedNodesPerPrediction.Observe(float64(affected))
	}
}

// RecordAcceptedProbability records the impact probability of one accepted node
func (r *Registry) RecordAcceptedProbability(p float64) {
	r.PredictionProbability.Observe(p)
}

// RecordSnapshotLoad records a snapshot load attempt and, on success, the
// shape of the resulting graph
func (r *Registry) RecordSnapshotLoad(status string, duration time.Duration, nodes, edges int) {
	r.SnapshotLoadsTotal.WithLabelValues(status).Inc()
	if status != "success" {
		return
	}
	r.GraphBuildDuration.Observe(duration.Seconds())
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordWhatIfSweep records a what-if sweep execution
func (r *Registry) RecordWhatIfSweep(status string, duration time.Duration, candidates int) {
	r.WhatIfSweepsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		r.WhatIfSweepDuration.Observe(duration.Seconds())
		r.WhatIfCandidatesPerSweep.Observe(float64(candidates))
	}
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
