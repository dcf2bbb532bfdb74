package graph

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func buildChain(t *testing.T, weights []float64) *InfrastructureGraph {
	t.Helper()
	g := newTestGraph(t)
	for i := 0; i <= len(weights); i++ {
		mustAddNode(t, g, fmt.Sprintf("n%d", i), TypePipe, nil, nil)
	}
	for i, w := range weights {
		mustAddEdge(t, g, fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1), w, false)
	}
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}
	return g
}

func TestGraphDistance_InverseWeightCosts(t *testing.T) {
	g := buildChain(t, []float64{1.0, 0.5})

	dist, err := g.GraphDistance("n0")
	if err != nil {
		t.Fatalf("GraphDistance: %v", err)
	}

	if dist["n0"] != 0 {
		t.Errorf("self distance = %v, want 0", dist["n0"])
	}
	if dist["n1"] != 1 {
		t.Errorf("one strong hop = %v, want 1", dist["n1"])
	}
	// 1/1.0 + 1/0.5
	if dist["n2"] != 3 {
		t.Errorf("weak second hop = %v, want 3", dist["n2"])
	}
}

func TestGraphDistance_DirectedEdgesOneWay(t *testing.T) {
	g := buildChain(t, []float64{0.8})

	dist, err := g.GraphDistance("n1")
	if err != nil {
		t.Fatalf("GraphDistance: %v", err)
	}
	if !math.IsInf(dist["n0"], 1) {
		t.Errorf("upstream distance = %v, want +Inf over a directed edge", dist["n0"])
	}
}

func TestGraphDistance_BidirectionalTraversal(t *testing.T) {
	g := newTestGraph(t)
	mustAddNode(t, g, "a", TypeCluster, nil, nil)
	mustAddNode(t, g, "b", TypeCluster, nil, nil)
	if err := g.AddEdge("a", "b", 0.5, EdgeProximity, "near", true); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}

	dist, err := g.GraphDistance("b")
	if err != nil {
		t.Fatalf("GraphDistance: %v", err)
	}
	if dist["a"] != 2 {
		t.Errorf("reverse distance = %v, want 2", dist["a"])
	}
}

func TestGraphDistance_PrefersStrongPath(t *testing.T) {
	g := newTestGraph(t)
	mustAddNode(t, g, "a", TypeTank, nil, nil)
	mustAddNode(t, g, "b", TypePump, nil, nil)
	mustAddNode(t, g, "c", TypeCluster, nil, nil)
	mustAddEdge(t, g, "a", "c", 0.2, false) // direct but weak: cost 5
	mustAddEdge(t, g, "a", "b", 1.0, false)
	mustAddEdge(t, g, "b", "c", 1.0, false) // detour: cost 2
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}

	dist, err := g.GraphDistance("a")
	if err != nil {
		t.Fatalf("GraphDistance: %v", err)
	}
	if dist["c"] != 2 {
		t.Errorf("distance = %v, want 2 via the strong detour", dist["c"])
	}
}

func TestGraphDistance_IsolatedNode(t *testing.T) {
	g := newTestGraph(t)
	mustAddNode(t, g, "a", TypeTank, nil, nil)
	mustAddNode(t, g, "island", TypeRoad, nil, nil)
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}

	dist, err := g.GraphDistance("a")
	if err != nil {
		t.Fatalf("GraphDistance: %v", err)
	}
	if !math.IsInf(dist["island"], 1) {
		t.Errorf("isolated node distance = %v, want +Inf", dist["island"])
	}
}

func TestGraphDistance_Errors(t *testing.T) {
	g := newTestGraph(t)
	mustAddNode(t, g, "a", TypeTank, nil, nil)

	if _, err := g.GraphDistance("a"); !errors.Is(err, ErrAdjacencyNotBuilt) {
		t.Errorf("before finalize: error = %v, want ErrAdjacencyNotBuilt", err)
	}

	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}
	if _, err := g.GraphDistance("ghost"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("unknown node: error = %v, want ErrNodeNotFound", err)
	}
}

func TestBFSPaths_HopMinimal(t *testing.T) {
	g := newTestGraph(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		mustAddNode(t, g, id, TypeRoad, nil, nil)
	}
	// Diamond: two 2-hop routes a->d plus a 3-hop detour through all nodes.
	mustAddEdge(t, g, "a", "b", 0.9, false)
	mustAddEdge(t, g, "a", "c", 0.9, false)
	mustAddEdge(t, g, "b", "c", 0.9, false)
	mustAddEdge(t, g, "b", "d", 0.9, false)
	mustAddEdge(t, g, "c", "d", 0.9, false)
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		t.Fatalf("BuildAdjacencyMatrix: %v", err)
	}

	paths, err := g.BFSPaths("a", 5)
	if err != nil {
		t.Fatalf("BFSPaths: %v", err)
	}

	path, ok := paths["d"]
	if !ok {
		t.Fatal("no path to d")
	}
	if len(path) != 3 {
		t.Fatalf("path = %v, want 2 hops", path)
	}
	if path[0] != "a" || path[2] != "d" {
		t.Errorf("path endpoints = %v", path)
	}
}

func TestBFSPaths_DepthBound(t *testing.T) {
	g := buildChain(t, []float64{0.9, 0.9, 0.9, 0.9, 0.9, 0.9}) // n0..n6

	paths, err := g.BFSPaths("n0", 5)
	if err != nil {
		t.Fatalf("BFSPaths: %v", err)
	}

	if _, ok := paths["n5"]; !ok {
		t.Error("n5 is 5 hops away and should be reachable")
	}
	if _, ok := paths["n6"]; ok {
		t.Error("n6 is 6 hops away and must be cut off at depth 5")
	}
	if _, ok := paths["n0"]; ok {
		t.Error("source must not appear in its own path map")
	}
	if got := paths["n3"]; len(got) != 4 {
		t.Errorf("path to n3 = %v, want 3 hops", got)
	}
}
