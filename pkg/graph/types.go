// Package graph models a village's physical infrastructure as a weighted
// directed graph with fixed-size node embeddings. The graph is built once
// from a snapshot, finalized, and then treated as immutable by everything
// downstream.
package graph

import (
	"math"
	"time"
)

// NodeType identifies the kind of infrastructure a node represents. The set
// is closed; the one-hot embedding index of each type is its position in
// AllNodeTypes.
type NodeType string

const (
	TypeRoad     NodeType = "road"
	TypeBuilding NodeType = "building"
	TypePower    NodeType = "power"
	TypeTank     NodeType = "tank"
	TypePump     NodeType = "pump"
	TypePipe     NodeType = "pipe"
	TypeSensor   NodeType = "sensor"
	TypeCluster  NodeType = "cluster"
	TypeBridge   NodeType = "bridge"
	TypeSchool   NodeType = "school"
	TypeHospital NodeType = "hospital"
	TypeMarket   NodeType = "market"
)

// AllNodeTypes lists every node type in one-hot index order.
var AllNodeTypes = []NodeType{
	TypeRoad, TypeBuilding, TypePower, TypeTank, TypePump, TypePipe,
	TypeSensor, TypeCluster, TypeBridge, TypeSchool, TypeHospital, TypeMarket,
}

var nodeTypeIndex = func() map[NodeType]int {
	m := make(map[NodeType]int, len(AllNodeTypes))
	for i, t := range AllNodeTypes {
		m[t] = i
	}
	return m
}()

// Valid reports whether the type belongs to the closed set.
func (t NodeType) Valid() bool {
	_, ok := nodeTypeIndex[t]
	return ok
}

// OneHotIndex returns the embedding slot for this type, or -1 when unknown.
func (t NodeType) OneHotIndex() int {
	if i, ok := nodeTypeIndex[t]; ok {
		return i
	}
	return -1
}

// ParseNodeType validates a raw string against the closed type set.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(s)
	if !t.Valid() {
		return "", NewError("parse").Context("node type " + s).Cause(ErrUnknownNodeType).Err()
	}
	return t, nil
}

// FailureType identifies what went wrong at the failed node. The set is
// closed so gate modifiers can switch exhaustively.
type FailureType string

const (
	FailureLeak          FailureType = "leak"
	FailureContamination FailureType = "contamination"
	FailurePowerOutage   FailureType = "power_outage"
	FailureStructural    FailureType = "structural"
	FailureRoadDamage    FailureType = "road_damage"
	FailureMalfunction   FailureType = "malfunction"
	FailureFlood         FailureType = "flood"
)

// AllFailureTypes lists every supported failure type.
var AllFailureTypes = []FailureType{
	FailureLeak, FailureContamination, FailurePowerOutage, FailureStructural,
	FailureRoadDamage, FailureMalfunction, FailureFlood,
}

// Valid reports whether the failure type belongs to the closed set.
func (f FailureType) Valid() bool {
	for _, known := range AllFailureTypes {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFailureType validates a raw string against the closed set.
func ParseFailureType(s string) (FailureType, error) {
	f := FailureType(s)
	if !f.Valid() {
		return "", NewError("parse").Context("failure type " + s).Cause(ErrUnknownFailureType).Err()
	}
	return f, nil
}

// Severity grades how badly the failed node failed.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AllSeverities lists the severity grades from mildest to worst.
var AllSeverities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Valid reports whether the severity belongs to the closed set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ParseSeverity validates a raw string against the closed set.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(raw)
	if !s.Valid() {
		return "", NewError("parse").Context("severity " + raw).Cause(ErrUnknownSeverity).Err()
	}
	return s, nil
}

// EdgeType categorizes the physical relationship an edge encodes.
type EdgeType string

const (
	EdgeSupplies  EdgeType = "supplies"
	EdgePowers    EdgeType = "powers"
	EdgeFeeds     EdgeType = "feeds"
	EdgeConnects  EdgeType = "connects"
	EdgeMonitors  EdgeType = "monitors"
	EdgeAccesses  EdgeType = "accesses"
	EdgeProximity EdgeType = "proximity"
)

// Coordinate is a position in a local planar frame, in meters.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to other in meters.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Node is one piece of infrastructure. Embedding and Criticality are
// derived from Props at insert time; Degree and the connectivity embedding
// slot are written once by BuildAdjacencyMatrix.
type Node struct {
	ID          string      `json:"id"`
	Type        NodeType    `json:"type"`
	Props       Properties  `json:"-"`
	Coord       *Coordinate `json:"coordinate,omitempty"`
	Embedding   []float64   `json:"-"`
	Criticality float64     `json:"criticality"`
	Degree      int         `json:"degree"`
}

// Edge is a directed dependency between two nodes. Weight is the coupling
// strength in (0,1]. Bidirectional edges are traversable both ways.
type Edge struct {
	Source        string   `json:"source"`
	Target        string   `json:"target"`
	Weight        float64  `json:"weight"`
	Type          EdgeType `json:"type"`
	Relationship  string   `json:"relationship,omitempty"`
	Bidirectional bool     `json:"bidirectional"`
}

// Stats summarizes a finalized graph.
type Stats struct {
	Nodes         int              `json:"nodes"`
	Edges         int              `json:"edges"`
	NodesByType   map[NodeType]int `json:"nodes_by_type"`
	AverageDegree float64          `json:"average_degree"`
	BuiltAt       time.Time        `json:"built_at"`
}
