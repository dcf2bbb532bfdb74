// Package visualization turns an impact report into a renderable payload:
// positioned nodes with severity-derived styling and links carrying
// particle-flow hints. The payload is plain data; any frontend can draw it.
package visualization

import (
	"github.com/dd0wney/gridcast/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for the initial random placement
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *graph.InfrastructureGraph) (map[string]Position, error)
}
