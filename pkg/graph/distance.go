package graph

import "math"

// GraphDistance computes the failure-propagation distance from one node to
// every other node using Dijkstra over the adjacency matrix. Edge cost is
// the inverse of the structural weight, so strong couplings are "close".
// Unreachable nodes map to +Inf.
func (g *InfrastructureGraph) GraphDistance(fromID string) (map[string]float64, error) {
	if !g.finalized {
		return nil, NewError("GraphDistance").Node(fromID).Cause(ErrAdjacencyNotBuilt).Err()
	}
	src, ok := g.index[fromID]
	if !ok {
		return nil, NodeNotFoundError("GraphDistance", fromID)
	}

	n := len(g.nodes)
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[src] = 0

	// Priority queue using a simple slice; graphs are village-sized, so
	// linear extract-min beats heap bookkeeping.
	type pqItem struct {
		index    int
		distance float64
	}
	pq := []pqItem{{src, 0}}

	for len(pq) > 0 {
		minIdx := 0
		for i := 1; i < len(pq); i++ {
			if pq[i].distance < pq[minIdx].distance {
				minIdx = i
			}
		}
		current := pq[minIdx]
		pq = append(pq[:minIdx], pq[minIdx+1:]...)

		if current.distance > dist[current.index] {
			continue // stale entry
		}

		for _, nb := range g.outNeighbors[current.index] {
			newDist := current.distance + 1/nb.Weight
			if newDist < dist[nb.Index] {
				dist[nb.Index] = newDist
				pq = append(pq, pqItem{nb.Index, newDist})
			}
		}
	}

	result := make(map[string]float64, n)
	for i, node := range g.nodes {
		result[node.ID] = dist[i]
	}
	return result, nil
}

// BFSPaths returns, for every node reachable within maxDepth hops of
// fromID, the first discovered hop path from fromID to that node
// (inclusive of both endpoints). BFS order makes that path hop-minimal.
func (g *InfrastructureGraph) BFSPaths(fromID string, maxDepth int) (map[string][]string, error) {
	if !g.finalized {
		return nil, NewError("BFSPaths").Node(fromID).Cause(ErrAdjacencyNotBuilt).Err()
	}
	src, ok := g.index[fromID]
	if !ok {
		return nil, NodeNotFoundError("BFSPaths", fromID)
	}

	parent := make(map[int]int)
	parent[src] = src
	frontier := []int{src}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []int
		for _, u := range frontier {
			for _, nb := range g.outNeighbors[u] {
				if _, seen := parent[nb.Index]; seen {
					continue
				}
				parent[nb.Index] = u
				next = append(next, nb.Index)
			}
		}
		frontier = next
	}

	paths := make(map[string][]string, len(parent))
	for idx := range parent {
		if idx == src {
			continue
		}
		var rev []int
		for node := idx; node != src; node = parent[node] {
			rev = append(rev, node)
		}
		path := make([]string, 0, len(rev)+1)
		path = append(path, fromID)
		for i := len(rev) - 1; i >= 0; i-- {
			path = append(path, g.nodes[rev[i]].ID)
		}
		paths[g.nodes[idx].ID] = path
	}
	return paths, nil
}
