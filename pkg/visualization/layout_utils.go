package visualization

import (
	"math"

	"github.com/dd0wney/gridcast/pkg/graph"
)

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	// Find bounds
	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	// Scale to fit bounds with padding
	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]Position, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}

// physicalPositions uses the nodes' surveyed coordinates when every node
// has one, scaled to the canvas. Returns nil when any node lacks a
// coordinate, so callers fall back to a computed layout.
func physicalPositions(g *graph.InfrastructureGraph, cfg *LayoutConfig) map[string]Position {
	nodes := g.Nodes()
	positions := make(map[string]Position, len(nodes))
	for _, node := range nodes {
		if node.Coord == nil {
			return nil
		}
		positions[node.ID] = Position{X: node.Coord.X, Y: node.Coord.Y}
	}
	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding)
}
