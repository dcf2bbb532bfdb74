package whatif

import "github.com/dd0wney/gridcast/pkg/graph"

// TopologyWeights scores every node's structural importance: normalized
// degree times the mean weight of its incident adjacency entries, rescaled
// so the best-connected node scores exactly 1. Isolated nodes score 0.
//
// The graph must be finalized; neighbor lists are empty before then and
// every weight comes back 0.
func TopologyWeights(g *graph.InfrastructureGraph) map[string]float64 {
	nodes := g.Nodes()
	weights := make(map[string]float64, len(nodes))
	if len(nodes) == 0 {
		return weights
	}

	denom := float64(len(nodes) - 1)
	maxWeight := 0.0
	for i, n := range nodes {
		sum, count := 0.0, 0
		for _, nb := range g.InNeighbors(i) {
			sum += nb.Weight
			count++
		}
		for _, nb := range g.OutNeighbors(i) {
			sum += nb.Weight
			count++
		}
		w := 0.0
		if count > 0 && denom > 0 {
			w = (float64(n.Degree) / denom) * (sum / float64(count))
		}
		weights[n.ID] = w
		if w > maxWeight {
			maxWeight = w
		}
	}

	if maxWeight > 0 {
		for id := range weights {
			weights[id] /= maxWeight
		}
	}
	return weights
}
