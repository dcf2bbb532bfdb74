package graph

import (
	"math"

	"github.com/dd0wney/gridcast/pkg/logging"
)

// BuildProximityEdges links every pair of located nodes closer than the
// configured cutoff with a bidirectional proximity edge. Explicit edges are
// never overwritten; first-writer-wins applies as everywhere else.
func (g *InfrastructureGraph) BuildProximityEdges() (int, error) {
	if g.finalized {
		return 0, NewError("BuildProximityEdges").Cause(ErrFinalized).Err()
	}

	added := 0
	for i, a := range g.nodes {
		if a.Coord == nil {
			continue
		}
		for j := i + 1; j < len(g.nodes); j++ {
			b := g.nodes[j]
			if b.Coord == nil {
				continue
			}
			dist := a.Coord.DistanceTo(*b.Coord)
			if dist > g.proximity.MaxDistance {
				continue
			}

			weight := math.Max(g.proximity.MinWeight, 1-dist/g.proximity.MaxDistance) * g.proximity.BaseWeightScale
			relationship := inferRelationship(a.Type, b.Type)

			if _, exists := g.outgoing[a.ID][b.ID]; !exists {
				if err := g.AddEdge(a.ID, b.ID, weight, EdgeProximity, relationship, true); err != nil {
					return added, err
				}
				added++
			}
		}
	}

	g.logger.Debug("proximity edges built",
		logging.Component("graph"),
		logging.Count(added),
	)
	return added, nil
}

// inferRelationship labels a proximity edge by what the type pair most
// plausibly exchanges. Checks run from most to least specific.
func inferRelationship(a, b NodeType) string {
	if isWaterSource(a) && isWaterConsumer(b) || isWaterSource(b) && isWaterConsumer(a) {
		return "water_supply"
	}
	if (a == TypePower || b == TypePower) && (isPowered(a) || isPowered(b)) {
		return "power_supply"
	}
	if a == TypeSensor || b == TypeSensor {
		return "monitoring"
	}
	if a == TypeRoad || a == TypeBridge || b == TypeRoad || b == TypeBridge {
		return "road_access"
	}
	return "near"
}

func isWaterSource(t NodeType) bool {
	return t == TypeTank || t == TypePump || t == TypePipe
}

func isWaterConsumer(t NodeType) bool {
	switch t {
	case TypeCluster, TypeBuilding, TypeHospital, TypeSchool, TypeMarket:
		return true
	}
	return false
}

func isPowered(t NodeType) bool {
	switch t {
	case TypePump, TypeSensor, TypeBuilding, TypeHospital, TypeSchool, TypeMarket, TypeCluster:
		return true
	}
	return false
}
