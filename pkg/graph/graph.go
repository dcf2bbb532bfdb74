package graph

import (
	"time"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/logging"
)

// InfrastructureGraph holds the village's nodes, edges and derived
// structures. Build order is: AddNode* → AddEdge* → BuildProximityEdges →
// BuildAdjacencyMatrix. After the adjacency matrix is built the graph is
// finalized and rejects further mutation; a new snapshot means a new graph.
type InfrastructureGraph struct {
	proximity config.ProximityConfig
	logger    logging.Logger

	nodes    []*Node
	index    map[string]int
	edges    []*Edge
	outgoing map[string]map[string]*Edge

	adjacency    [][]float64
	inNeighbors  [][]Neighbor
	outNeighbors [][]Neighbor
	finalized    bool
	builtAt      time.Time
}

// Neighbor pairs a node index with the structural weight of the connecting
// edge, as read from the adjacency matrix.
type Neighbor struct {
	Index  int
	Weight float64
}

// New creates an empty graph with the given proximity configuration.
func New(proximity config.ProximityConfig, logger logging.Logger) *InfrastructureGraph {
	return &InfrastructureGraph{
		proximity: proximity,
		logger:    logging.OrNop(logger),
		index:     make(map[string]int),
		outgoing:  make(map[string]map[string]*Edge),
	}
}

// AddNode inserts a node and derives its embedding and criticality from the
// typed properties. The property struct must match the declared type.
func (g *InfrastructureGraph) AddNode(id string, t NodeType, props Properties, coord *Coordinate) (*Node, error) {
	if g.finalized {
		return nil, NewError("AddNode").Node(id).Cause(ErrFinalized).Err()
	}
	if id == "" {
		return nil, NewError("AddNode").Cause(ErrInvalidNodeID).Err()
	}
	if !t.Valid() {
		return nil, NewError("AddNode").Node(id).Context(string(t)).Cause(ErrUnknownNodeType).Err()
	}
	if _, exists := g.index[id]; exists {
		return nil, NewError("AddNode").Node(id).Cause(ErrDuplicateNode).Err()
	}
	if props == nil {
		props, _ = NewProperties(t)
	}
	if props.nodeType() != t {
		return nil, NewError("AddNode").Node(id).Context(string(t)).Cause(ErrPropsMismatch).Err()
	}

	node := &Node{
		ID:          id,
		Type:        t,
		Props:       props,
		Coord:       coord,
		Embedding:   buildEmbedding(t, props, time.Now()),
		Criticality: criticalityOf(t, props),
	}

	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return node, nil
}

// AddEdge appends a directed edge. Duplicate source→target pairs are a
// silent no-op: the first writer wins and later calls never overwrite.
func (g *InfrastructureGraph) AddEdge(source, target string, weight float64, edgeType EdgeType, relationship string, bidirectional bool) error {
	if g.finalized {
		return NewError("AddEdge").Node(source).Target(target).Cause(ErrFinalized).Err()
	}
	if source == target {
		return NewError("AddEdge").Node(source).Cause(ErrSelfEdge).Err()
	}
	if _, ok := g.index[source]; !ok {
		return NewError("AddEdge").Node(source).Cause(ErrNodeNotFound).Err()
	}
	if _, ok := g.index[target]; !ok {
		return NewError("AddEdge").Node(target).Cause(ErrNodeNotFound).Err()
	}
	if weight <= 0 || weight > 1 {
		return NewError("AddEdge").Node(source).Target(target).Cause(ErrInvalidEdgeWeight).Err()
	}

	if _, exists := g.outgoing[source][target]; exists {
		return nil
	}

	edge := &Edge{
		Source:        source,
		Target:        target,
		Weight:        weight,
		Type:          edgeType,
		Relationship:  relationship,
		Bidirectional: bidirectional,
	}
	if g.outgoing[source] == nil {
		g.outgoing[source] = make(map[string]*Edge)
	}
	g.outgoing[source][target] = edge
	g.edges = append(g.edges, edge)
	return nil
}

// GetNode returns the node with the given id.
func (g *InfrastructureGraph) GetNode(id string) (*Node, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, NodeNotFoundError("GetNode", id)
	}
	return g.nodes[i], nil
}

// IndexOf returns the dense index of a node id.
func (g *InfrastructureGraph) IndexOf(id string) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return 0, NodeNotFoundError("IndexOf", id)
	}
	return i, nil
}

// Nodes returns all nodes in insertion order. Callers must not mutate.
func (g *InfrastructureGraph) Nodes() []*Node {
	return g.nodes
}

// NodesByType returns all nodes of the given type in insertion order.
func (g *InfrastructureGraph) NodesByType(t NodeType) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// NodeIDs returns every node id in insertion order.
func (g *InfrastructureGraph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Edges returns all edge records in insertion order. Callers must not
// mutate.
func (g *InfrastructureGraph) Edges() []*Edge {
	return g.edges
}

// OutEdges returns the explicit edge records leaving a node.
func (g *InfrastructureGraph) OutEdges(id string) []*Edge {
	targets := g.outgoing[id]
	if len(targets) == 0 {
		return nil
	}
	out := make([]*Edge, 0, len(targets))
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *InfrastructureGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edge records.
func (g *InfrastructureGraph) EdgeCount() int { return len(g.edges) }

// Finalized reports whether the adjacency matrix has been built.
func (g *InfrastructureGraph) Finalized() bool { return g.finalized }

// AverageDegree returns the mean node degree. Zero before finalization.
func (g *InfrastructureGraph) AverageDegree() float64 {
	if !g.finalized || len(g.nodes) == 0 {
		return 0
	}
	total := 0
	for _, n := range g.nodes {
		total += n.Degree
	}
	return float64(total) / float64(len(g.nodes))
}

// Stats summarizes the graph.
func (g *InfrastructureGraph) Stats() Stats {
	byType := make(map[NodeType]int)
	for _, n := range g.nodes {
		byType[n.Type]++
	}
	return Stats{
		Nodes:         len(g.nodes),
		Edges:         len(g.edges),
		NodesByType:   byType,
		AverageDegree: g.AverageDegree(),
		BuiltAt:       g.builtAt,
	}
}
