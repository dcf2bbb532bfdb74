package visualization

import (
	"math"
	"math/rand"

	"github.com/dd0wney/gridcast/pkg/graph"
)

// ForceDirectedLayout implements force-directed graph layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.InfrastructureGraph) (map[string]Position, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return make(map[string]Position), nil
	}

	// Single node - center it
	if len(nodes) == 1 {
		return map[string]Position{
			nodes[0].ID: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	// Initialize with seeded random positions so layouts reproduce
	rng := rand.New(rand.NewSource(fdl.config.Seed))
	positions := make(map[string]Position, len(nodes))
	for _, node := range nodes {
		positions[node.ID] = Position{
			X: rng.Float64() * fdl.config.Width,
			Y: rng.Float64() * fdl.config.Height,
		}
	}

	// Undirected neighbor map over raw edges
	edgeMap := make(map[string]map[string]bool, len(nodes))
	for _, node := range nodes {
		edgeMap[node.ID] = make(map[string]bool)
	}
	for _, edge := range g.Edges() {
		edgeMap[edge.Source][edge.Target] = true
		edgeMap[edge.Target][edge.Source] = true
	}

	// Force-directed iterations
	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodes))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position, len(nodes))
		for _, node := range nodes {
			forces[node.ID] = Position{X: 0, Y: 0}
		}

		// Repulsion between all nodes
		for i, a := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				b := nodes[j]
				dx := positions[a.ID].X - positions[b.ID].X
				dy := positions[a.ID].Y - positions[b.ID].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				// Repulsive force
				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[a.ID] = Position{
					X: forces[a.ID].X + fx,
					Y: forces[a.ID].Y + fy,
				}
				forces[b.ID] = Position{
					X: forces[b.ID].X - fx,
					Y: forces[b.ID].Y - fy,
				}
			}
		}

		// Attraction between connected nodes
		for _, a := range nodes {
			for neighborID := range edgeMap[a.ID] {
				if _, exists := positions[neighborID]; !exists {
					continue
				}

				dx := positions[a.ID].X - positions[neighborID].X
				dy := positions[a.ID].Y - positions[neighborID].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				// Attractive force
				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[a.ID] = Position{
					X: forces[a.ID].X - fx,
					Y: forces[a.ID].Y - fy,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, node := range nodes {
			fx := forces[node.ID].X
			fy := forces[node.ID].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool

				positions[node.ID] = Position{
					X: positions[node.ID].X + dx,
					Y: positions[node.ID].Y + dy,
				}
			}
		}

		temperature *= 0.95
	}

	// Normalize positions to bounds
	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
