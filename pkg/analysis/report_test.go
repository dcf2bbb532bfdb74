package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/predict"
)

// pipelineGraph wires the full water and power chains used by the
// end-to-end report tests.
func pipelineGraph(t *testing.T) *graph.InfrastructureGraph {
	t.Helper()
	g := graph.New(config.DefaultProximity(), nil)
	for _, n := range []struct {
		id string
		nt graph.NodeType
	}{
		{"tank-1", graph.TypeTank},
		{"pump-1", graph.TypePump},
		{"pipe-1", graph.TypePipe},
		{"cluster-1", graph.TypeCluster},
		{"hospital-1", graph.TypeHospital},
		{"power-1", graph.TypePower},
		{"road-99", graph.TypeRoad},
	} {
		if _, err := g.AddNode(n.id, n.nt, nil, nil); err != nil {
			t.Fatalf("AddNode(%s): %v", n.id, err)
		}
	}
	for _, e := range []struct {
		src, dst string
		w        float64
	}{
		{"tank-1", "pump-1", 0.9},
		{"pump-1", "pipe-1", 0.9},
		{"pipe-1", "cluster-1", 0.85},
		{"pipe-1", "hospital-1", 0.8},
		{"power-1", "pump-1", 0.95},
	} {
		if err := g.AddEdge(e.src, e.dst, e.w, graph.EdgeSupplies, "", false); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}
	return g
}

func TestReport_EndToEndJSONRoundTrip(t *testing.T) {
	g := pipelineGraph(t)
	cfg := config.DefaultEngine()
	network, err := predict.NewNetwork(&cfg)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	analyzer := NewAnalyzer(&cfg, nil)

	scores, err := network.Predict(g, "tank-1", graph.FailureLeak, graph.SeverityCritical)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	report, err := analyzer.Analyze(g, "tank-1", graph.FailureLeak, graph.SeverityCritical, scores)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.ID == "" {
		t.Error("report ID empty")
	}
	if report.FailedNodeID != "tank-1" || report.FailedType != graph.TypeTank {
		t.Errorf("failed node = %s/%s", report.FailedNodeID, report.FailedType)
	}

	// Accepted nodes must be JSON-safe: no infinities anywhere.
	for _, n := range report.Affected {
		if math.IsInf(n.TimeToImpact, 0) || math.IsInf(n.Distance, 0) {
			t.Fatalf("accepted node %s carries an infinity", n.NodeID)
		}
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded ImpactReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.ID != report.ID {
		t.Errorf("ID changed: %s vs %s", decoded.ID, report.ID)
	}
	if !decoded.GeneratedAt.Equal(report.GeneratedAt) {
		t.Errorf("GeneratedAt changed: %v vs %v", decoded.GeneratedAt, report.GeneratedAt)
	}
	if decoded.FailureType != report.FailureType || decoded.Severity != report.Severity {
		t.Error("scenario fields changed")
	}
	if len(decoded.Affected) != len(report.Affected) {
		t.Fatalf("affected length changed: %d vs %d", len(decoded.Affected), len(report.Affected))
	}
	for i := range report.Affected {
		if decoded.Affected[i].NodeID != report.Affected[i].NodeID {
			t.Errorf("ranking order changed at %d: %s vs %s",
				i, decoded.Affected[i].NodeID, report.Affected[i].NodeID)
		}
		if decoded.Affected[i].Probability != report.Affected[i].Probability {
			t.Errorf("probability drifted at %d", i)
		}
		if decoded.Affected[i].SeverityScore != report.Affected[i].SeverityScore {
			t.Errorf("severity score drifted at %d", i)
		}
	}
	if decoded.Assessment.RiskLevel != report.Assessment.RiskLevel {
		t.Error("risk level changed")
	}
	if decoded.Assessment.EstimatedRecoveryHours != report.Assessment.EstimatedRecoveryHours {
		t.Error("recovery hours drifted")
	}
}

func TestReport_DeterministicAcrossRuns(t *testing.T) {
	g := pipelineGraph(t)
	cfg := config.DefaultEngine()

	run := func() *ImpactReport {
		network, err := predict.NewNetwork(&cfg)
		if err != nil {
			t.Fatalf("NewNetwork: %v", err)
		}
		scores, err := network.Predict(g, "power-1", graph.FailurePowerOutage, graph.SeverityHigh)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		report, err := NewAnalyzer(&cfg, nil).Analyze(g, "power-1", graph.FailurePowerOutage, graph.SeverityHigh, scores)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		return report
	}

	first := run()
	second := run()

	if len(first.Affected) != len(second.Affected) {
		t.Fatalf("affected counts differ: %d vs %d", len(first.Affected), len(second.Affected))
	}
	for i := range first.Affected {
		a, b := first.Affected[i], second.Affected[i]
		if a.NodeID != b.NodeID || a.Probability != b.Probability || a.SeverityScore != b.SeverityScore {
			t.Fatalf("rank %d differs: %+v vs %+v", i, a, b)
		}
	}
	if first.Assessment.RiskLevel != second.Assessment.RiskLevel {
		t.Error("risk level differs between identical runs")
	}
}
