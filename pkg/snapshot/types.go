// Package snapshot ingests village infrastructure captures. A capture is
// a versioned entity list with embedded edge specs, serialized either as
// plain JSON or as a snappy-compressed framed block, and built into a
// finalized InfrastructureGraph.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/dd0wney/gridcast/pkg/graph"
)

// EdgeSpec declares one outgoing dependency of an entity. An empty Type
// defaults to "connects" during the build.
type EdgeSpec struct {
	Target        string         `json:"target"`
	Weight        float64        `json:"weight"`
	Type          graph.EdgeType `json:"type,omitempty"`
	Relationship  string         `json:"relationship,omitempty"`
	Bidirectional bool           `json:"bidirectional,omitempty"`
}

// Entity is one piece of infrastructure in a capture. Props holds the raw
// per-type JSON object; its shape is resolved against Type during Build.
// Linear features (roads, pipes) may carry a Path instead of a Coord.
type Entity struct {
	ID    string             `json:"id"`
	Type  graph.NodeType     `json:"type"`
	Props json.RawMessage    `json:"props,omitempty"`
	Coord *graph.Coordinate  `json:"coordinate,omitempty"`
	Path  []graph.Coordinate `json:"path,omitempty"`
	Edges []EdgeSpec         `json:"edges,omitempty"`
}

// Coordinate resolves the entity position: the explicit coordinate when
// present, otherwise the centroid of its path. Nil when it has neither.
func (e *Entity) Coordinate() *graph.Coordinate {
	if e.Coord != nil {
		return e.Coord
	}
	if len(e.Path) == 0 {
		return nil
	}
	var cx, cy float64
	for _, p := range e.Path {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(e.Path))
	return &graph.Coordinate{X: cx / n, Y: cy / n}
}

// Snapshot is a full capture of the village at one point in time.
type Snapshot struct {
	Version    string    `json:"version"`
	CapturedAt time.Time `json:"captured_at"`
	Entities   []Entity  `json:"entities"`
}
