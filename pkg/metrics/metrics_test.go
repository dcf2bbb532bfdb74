package metrics

import (
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.PredictionsTotal == nil {
		t.Error("PredictionsTotal not initialized")
	}
	if r.PredictionDuration == nil {
		t.Error("PredictionDuration not initialized")
	}
	if r.GraphNodesTotal == nil {
		t.Error("GraphNodesTotal not initialized")
	}
	if r.WhatIfSweepsTotal == nil {
		t.Error("WhatIfSweepsTotal not initialized")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordPrediction(t *testing.T) {
	r := NewRegistry()

	r.RecordPrediction("leak", "success", 10*time.Millisecond, 4)
	r.RecordPrediction("leak", "success", 20*time.Millisecond, 2)
	r.RecordPrediction("leak", "error", 5*time.Millisecond, 0)

	successCounter, err := r.PredictionsTotal.GetMetricWithLabelValues("leak", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.PredictionsTotal.GetMetricWithLabelValues("leak", "error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordSnapshotLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordSnapshotLoad("success", 30*time.Millisecond, 25, 40)

	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	var nodesGauge, edgesGauge float64
	for _, fam := range families {
		switch fam.GetName() {
		case "gridcast_graph_nodes_total":
			nodesGauge = fam.GetMetric()[0].GetGauge().GetValue()
		case "gridcast_graph_edges_total":
			edgesGauge = fam.GetMetric()[0].GetGauge().GetValue()
		}
	}

	if nodesGauge != 25 {
		t.Errorf("GraphNodesTotal = %v, want 25", nodesGauge)
	}
	if edgesGauge != 40 {
		t.Errorf("GraphEdgesTotal = %v, want 40", edgesGauge)
	}
}

func TestRecordSnapshotLoadFailureKeepsGauges(t *testing.T) {
	r := NewRegistry()

	r.RecordSnapshotLoad("success", time.Millisecond, 10, 12)
	r.RecordSnapshotLoad("error", time.Millisecond, 0, 0)

	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == "gridcast_graph_nodes_total" {
			if got := fam.GetMetric()[0].GetGauge().GetValue(); got != 10 {
				t.Errorf("failed load overwrote node gauge: got %v, want 10", got)
			}
		}
	}
}

func TestRecordWhatIfSweep(t *testing.T) {
	r := NewRegistry()

	r.RecordWhatIfSweep("success", 100*time.Millisecond, 30)

	counter, err := r.WhatIfSweepsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Sweep counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestMetricNamesHavePrefix(t *testing.T) {
	r := NewRegistry()

	// Touch a labeled metric so it shows up in the gather
	r.RecordHTTPRequest("GET", "/api/v1/graph/stats", "200", time.Millisecond)

	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("no metric families registered")
	}
	for _, fam := range families {
		if !strings.HasPrefix(fam.GetName(), "gridcast_") {
			t.Errorf("metric %q missing gridcast_ prefix", fam.GetName())
		}
	}
}
