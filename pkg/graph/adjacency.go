package graph

import (
	"time"

	"github.com/dd0wney/gridcast/pkg/logging"
)

// BuildAdjacencyMatrix finalizes the graph: it materializes the N×N weight
// matrix, precomputes neighbor lists, writes each node's degree and the
// normalized-degree connectivity slot of its embedding, and locks the graph
// against further mutation. Duplicate directed pairs keep the max weight.
func (g *InfrastructureGraph) BuildAdjacencyMatrix() ([][]float64, error) {
	if len(g.nodes) == 0 {
		return nil, NewError("BuildAdjacencyMatrix").Cause(ErrEmptyGraph).Err()
	}
	if g.finalized {
		return g.adjacency, nil
	}

	n := len(g.nodes)
	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
	}

	for _, e := range g.edges {
		si := g.index[e.Source]
		ti := g.index[e.Target]
		if e.Weight > adj[si][ti] {
			adj[si][ti] = e.Weight
		}
		if e.Bidirectional && e.Weight > adj[ti][si] {
			adj[ti][si] = e.Weight
		}
	}

	g.adjacency = adj
	g.inNeighbors = make([][]Neighbor, n)
	g.outNeighbors = make([][]Neighbor, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if w := adj[i][j]; w > 0 {
				g.outNeighbors[i] = append(g.outNeighbors[i], Neighbor{Index: j, Weight: w})
				g.inNeighbors[j] = append(g.inNeighbors[j], Neighbor{Index: i, Weight: w})
			}
		}
	}

	// Degree counts distinct neighbors in either direction; the normalized
	// degree lands in the connectivity embedding slot. This is the single
	// permitted post-insert embedding write.
	for i, node := range g.nodes {
		distinct := make(map[int]struct{})
		for _, nb := range g.inNeighbors[i] {
			distinct[nb.Index] = struct{}{}
		}
		for _, nb := range g.outNeighbors[i] {
			distinct[nb.Index] = struct{}{}
		}
		node.Degree = len(distinct)
		if n > 1 {
			node.Embedding[SlotConnectivity] = float64(node.Degree) / float64(n-1)
		}
	}

	g.finalized = true
	g.builtAt = time.Now()
	g.logger.Info("graph finalized",
		logging.Component("graph"),
		logging.Nodes(n),
		logging.Edges(len(g.edges)),
	)
	return adj, nil
}

// Adjacency returns the built matrix. Callers must not mutate it.
func (g *InfrastructureGraph) Adjacency() ([][]float64, error) {
	if !g.finalized {
		return nil, NewError("Adjacency").Cause(ErrAdjacencyNotBuilt).Err()
	}
	return g.adjacency, nil
}

// InNeighbors returns the nodes with edges flowing into index i, with
// structural weights. Attention aggregation pulls from exactly this set.
func (g *InfrastructureGraph) InNeighbors(i int) []Neighbor {
	if !g.finalized || i < 0 || i >= len(g.inNeighbors) {
		return nil
	}
	return g.inNeighbors[i]
}

// OutNeighbors returns the nodes reachable one hop downstream of index i.
func (g *InfrastructureGraph) OutNeighbors(i int) []Neighbor {
	if !g.finalized || i < 0 || i >= len(g.outNeighbors) {
		return nil
	}
	return g.outNeighbors[i]
}
