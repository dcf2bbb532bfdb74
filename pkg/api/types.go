package api

import (
	"time"

	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/service"
)

// HealthResponse is returned from /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Ready     bool      `json:"ready"`
	Uptime    string    `json:"uptime"`
}

// ErrorResponse is the envelope for every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SnapshotLoadResponse acknowledges a deployed capture
type SnapshotLoadResponse struct {
	Loaded   bool                 `json:"loaded"`
	Snapshot service.SnapshotInfo `json:"snapshot"`
}

// NodeResponse is one node of the deployed graph
type NodeResponse struct {
	ID          string            `json:"id"`
	Type        graph.NodeType    `json:"type"`
	Criticality float64           `json:"criticality"`
	Degree      int               `json:"degree"`
	Coordinate  *graph.Coordinate `json:"coordinate,omitempty"`
}

// NodesResponse lists nodes with the filter that produced them
type NodesResponse struct {
	Nodes []NodeResponse `json:"nodes"`
	Count int            `json:"count"`
	Type  string         `json:"type,omitempty"`
}

func toNodeResponse(n *graph.Node) NodeResponse {
	return NodeResponse{
		ID:          n.ID,
		Type:        n.Type,
		Criticality: n.Criticality,
		Degree:      n.Degree,
		Coordinate:  n.Coord,
	}
}
