package snapshot

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
)

// villageCapture is the shared fixture: a short water chain with explicit
// edges, one road defined only by its path, and coordinates close enough
// that tank-1 and cluster-1 pick up a proximity edge.
func villageCapture() *Snapshot {
	return &Snapshot{
		Version:    "1.0",
		CapturedAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		Entities: []Entity{
			{
				ID:    "tank-1",
				Type:  graph.TypeTank,
				Props: json.RawMessage(`{"condition":0.8,"fill_level":0.9,"primary_source":true}`),
				Coord: &graph.Coordinate{X: 0, Y: 0},
				Edges: []EdgeSpec{
					{Target: "pump-1", Weight: 0.9, Type: graph.EdgeSupplies, Relationship: "gravity_feed"},
				},
			},
			{
				ID:    "pump-1",
				Type:  graph.TypePump,
				Coord: &graph.Coordinate{X: 40, Y: 0},
				Edges: []EdgeSpec{
					{Target: "cluster-1", Weight: 0.85, Type: graph.EdgeFeeds},
				},
			},
			{
				ID:   "road-1",
				Type: graph.TypeRoad,
				Path: []graph.Coordinate{{X: 0, Y: 100}, {X: 100, Y: 100}, {X: 200, Y: 100}},
			},
			{
				ID:    "cluster-1",
				Type:  graph.TypeCluster,
				Coord: &graph.Coordinate{X: 60, Y: 0},
			},
		},
	}
}

func TestBuild_FullPipeline(t *testing.T) {
	g, err := Build(villageCapture(), config.DefaultProximity(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !g.Finalized() {
		t.Fatal("built graph is not finalized")
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", g.NodeCount())
	}
	// Two explicit edges plus exactly one proximity edge: tank-1 and
	// cluster-1 are 60m apart with no explicit link, every other located
	// pair is either explicitly linked already or beyond the 100m cutoff.
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}

	road, err := g.GetNode("road-1")
	if err != nil {
		t.Fatalf("GetNode(road-1): %v", err)
	}
	if road.Coord == nil {
		t.Fatal("road-1 has no coordinate, want path centroid")
	}
	if math.Abs(road.Coord.X-100) > 1e-9 || math.Abs(road.Coord.Y-100) > 1e-9 {
		t.Errorf("road-1 coord = (%v,%v), want (100,100)", road.Coord.X, road.Coord.Y)
	}

	tank, err := g.GetNode("tank-1")
	if err != nil {
		t.Fatalf("GetNode(tank-1): %v", err)
	}
	// Primary-source tank criticality: 0.85 baseline plus the boost.
	if math.Abs(tank.Criticality-0.95) > 1e-9 {
		t.Errorf("tank-1 criticality = %v, want 0.95", tank.Criticality)
	}
}

func TestBuild_SkipsUnknownEdgeTargets(t *testing.T) {
	snap := villageCapture()
	snap.Entities[0].Edges = append(snap.Entities[0].Edges,
		EdgeSpec{Target: "ghost-9", Weight: 0.5})

	g, err := Build(snap, config.DefaultProximity(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3 with ghost edge skipped", g.EdgeCount())
	}
}

func TestBuild_DefaultEdgeType(t *testing.T) {
	snap := &Snapshot{
		Version: "1.0",
		Entities: []Entity{
			{ID: "a-1", Type: graph.TypeSensor, Edges: []EdgeSpec{{Target: "b-1", Weight: 0.4}}},
			{ID: "b-1", Type: graph.TypeTank},
		},
	}
	g, err := Build(snap, config.DefaultProximity(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	edges := g.OutEdges("a-1")
	if len(edges) != 1 {
		t.Fatalf("OutEdges(a-1) = %d, want 1", len(edges))
	}
	if edges[0].Type != graph.EdgeConnects {
		t.Errorf("edge type = %q, want %q", edges[0].Type, graph.EdgeConnects)
	}
}

func TestBuild_EntityErrors(t *testing.T) {
	t.Run("nil snapshot", func(t *testing.T) {
		if _, err := Build(nil, config.DefaultProximity(), nil); !errors.Is(err, ErrNilSnapshot) {
			t.Errorf("error = %v, want ErrNilSnapshot", err)
		}
	})

	t.Run("duplicate entity", func(t *testing.T) {
		snap := villageCapture()
		snap.Entities = append(snap.Entities, Entity{ID: "tank-1", Type: graph.TypeTank})
		if _, err := Build(snap, config.DefaultProximity(), nil); !errors.Is(err, graph.ErrDuplicateNode) {
			t.Errorf("error = %v, want ErrDuplicateNode", err)
		}
	})

	t.Run("unknown entity type", func(t *testing.T) {
		snap := villageCapture()
		snap.Entities[1].Type = "castle"
		if _, err := Build(snap, config.DefaultProximity(), nil); !errors.Is(err, graph.ErrUnknownNodeType) {
			t.Errorf("error = %v, want ErrUnknownNodeType", err)
		}
	})

	t.Run("malformed props", func(t *testing.T) {
		snap := villageCapture()
		snap.Entities[0].Props = json.RawMessage(`{"fill_level":"not a number"}`)
		if _, err := Build(snap, config.DefaultProximity(), nil); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("error = %v, want ErrCorruptSnapshot", err)
		}
	})

	t.Run("invalid edge weight", func(t *testing.T) {
		snap := villageCapture()
		snap.Entities[0].Edges[0].Weight = 1.5
		if _, err := Build(snap, config.DefaultProximity(), nil); !errors.Is(err, graph.ErrInvalidEdgeWeight) {
			t.Errorf("error = %v, want ErrInvalidEdgeWeight", err)
		}
	})
}

func TestEntityCoordinate(t *testing.T) {
	explicit := &graph.Coordinate{X: 5, Y: 6}

	tests := []struct {
		name string
		ent  Entity
		want *graph.Coordinate
	}{
		{"explicit wins over path", Entity{Coord: explicit, Path: []graph.Coordinate{{X: 100, Y: 100}}}, explicit},
		{"centroid of path", Entity{Path: []graph.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 20}}}, &graph.Coordinate{X: 5, Y: 10}},
		{"neither", Entity{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ent.Coordinate()
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("coordinate = %+v, want nil", got)
			case tt.want != nil && got == nil:
				t.Error("coordinate = nil, want value")
			case tt.want != nil && (got.X != tt.want.X || got.Y != tt.want.Y):
				t.Errorf("coordinate = %+v, want %+v", got, tt.want)
			}
		})
	}
}
