package visualization

import (
	"testing"

	"github.com/dd0wney/gridcast/pkg/analysis"
)

func testReport() *analysis.ImpactReport {
	return &analysis.ImpactReport{
		ID:           "test-report",
		FailedNodeID: "tank-1",
		FailedType:   "tank",
		FailureType:  "leak",
		Severity:     "critical",
		Affected: []analysis.AffectedNode{
			{NodeID: "pump-1", NodeType: "pump", Probability: 0.8, Severity: analysis.BucketHigh, SeverityScore: 0.7},
			{NodeID: "cluster-1", NodeType: "cluster", Probability: 0.4, Severity: analysis.BucketMedium, SeverityScore: 0.4},
		},
	}
}

func TestBuildPayload(t *testing.T) {
	g := buildTestGraph(t, true)
	payload, err := BuildPayload(g, testReport(), nil)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	if len(payload.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(payload.Nodes))
	}

	byID := make(map[string]VisualNode)
	for _, vn := range payload.Nodes {
		byID[vn.ID] = vn
	}

	failed := byID["tank-1"]
	if failed.Color != colorFailed || !failed.Pulse {
		t.Errorf("failed node style = (%s, pulse=%v), want (%s, pulse=true)", failed.Color, failed.Pulse, colorFailed)
	}
	for _, vn := range payload.Nodes {
		if vn.ID != "tank-1" && vn.Size >= failed.Size {
			t.Errorf("node %s size %v not smaller than failed node %v", vn.ID, vn.Size, failed.Size)
		}
	}

	high := byID["pump-1"]
	if high.Color != colorHigh || !high.Pulse {
		t.Errorf("high node style = (%s, pulse=%v), want (%s, pulse=true)", high.Color, high.Pulse, colorHigh)
	}
	medium := byID["cluster-1"]
	if medium.Color != colorMedium || medium.Pulse {
		t.Errorf("medium node style = (%s, pulse=%v), want (%s, pulse=false)", medium.Color, medium.Pulse, colorMedium)
	}
}

func TestBuildPayload_ImpactFlowLinks(t *testing.T) {
	g := buildTestGraph(t, true)
	payload, err := BuildPayload(g, testReport(), nil)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	var structural, flow []VisualLink
	for _, link := range payload.Links {
		switch link.Kind {
		case KindStructural:
			structural = append(structural, link)
		case KindImpactFlow:
			flow = append(flow, link)
		default:
			t.Errorf("unknown link kind %q", link.Kind)
		}
	}

	if len(structural) != 2 {
		t.Errorf("structural links = %d, want 2", len(structural))
	}
	if len(flow) != 2 {
		t.Fatalf("impact-flow links = %d, want 2", len(flow))
	}

	for _, link := range flow {
		if link.Source != "tank-1" {
			t.Errorf("impact-flow source = %s, want tank-1", link.Source)
		}
		if link.Particles < 1 {
			t.Errorf("impact-flow particles = %d, want >= 1", link.Particles)
		}
	}

	// Particle count scales with probability: p=0.8 -> 1+round(3.2)=4
	for _, link := range flow {
		if link.Target == "pump-1" && link.Particles != 4 {
			t.Errorf("pump-1 particles = %d, want 4", link.Particles)
		}
		if link.Target == "cluster-1" && link.Particles != 3 {
			t.Errorf("cluster-1 particles = %d, want 3", link.Particles)
		}
	}
}

func TestBuildPayload_NilArguments(t *testing.T) {
	g := buildTestGraph(t, false)
	if _, err := BuildPayload(nil, testReport(), nil); err == nil {
		t.Error("nil graph accepted")
	}
	if _, err := BuildPayload(g, nil, nil); err == nil {
		t.Error("nil report accepted")
	}
}
