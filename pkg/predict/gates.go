package predict

import (
	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
)

// baseGates encodes how strongly a failure in a node of the first type
// couples into a node of the second type. Rows are the failed type, columns
// the candidate target. Entries cover the physical chains of a village:
// water (tank→pump→pipe→consumers), power (plant→equipment), access
// (road/bridge→facilities) and monitoring (sensors). Missing pairs fall back
// to the same-type gate or the default background gate.
//
// The table is package data and must never be mutated after init.
var baseGates = map[graph.NodeType]map[graph.NodeType]float64{
	graph.TypeTank: {
		graph.TypePump:     0.9,
		graph.TypePipe:     0.85,
		graph.TypeCluster:  0.8,
		graph.TypeHospital: 0.75,
		graph.TypeSchool:   0.7,
		graph.TypeBuilding: 0.6,
		graph.TypeMarket:   0.55,
		graph.TypeSensor:   0.5,
		graph.TypePower:    0.0,
		graph.TypeRoad:     0.05,
		graph.TypeBridge:   0.05,
	},
	graph.TypePump: {
		graph.TypePipe:     0.9,
		graph.TypeTank:     0.8,
		graph.TypeCluster:  0.75,
		graph.TypeHospital: 0.7,
		graph.TypeSchool:   0.65,
		graph.TypeBuilding: 0.55,
		graph.TypeMarket:   0.5,
		graph.TypeSensor:   0.5,
		graph.TypePower:    0.1,
	},
	graph.TypePipe: {
		graph.TypeCluster:  0.85,
		graph.TypeHospital: 0.8,
		graph.TypeSchool:   0.75,
		graph.TypeBuilding: 0.65,
		graph.TypeMarket:   0.6,
		graph.TypeTank:     0.4,
		graph.TypePump:     0.4,
		graph.TypeSensor:   0.45,
		graph.TypePower:    0.0,
	},
	graph.TypePower: {
		graph.TypePump:     0.9,
		graph.TypeSensor:   0.85,
		graph.TypeHospital: 0.85,
		graph.TypeSchool:   0.7,
		graph.TypeCluster:  0.75,
		graph.TypeBuilding: 0.65,
		graph.TypeMarket:   0.6,
		graph.TypeTank:     0.2,
		graph.TypePipe:     0.1,
	},
	graph.TypeRoad: {
		graph.TypeHospital: 0.9,
		graph.TypeMarket:   0.8,
		graph.TypeSchool:   0.75,
		graph.TypeCluster:  0.7,
		graph.TypeBridge:   0.6,
		graph.TypeBuilding: 0.5,
		graph.TypeTank:     0.3,
		graph.TypePump:     0.3,
		graph.TypePower:    0.3,
	},
	graph.TypeBridge: {
		graph.TypeRoad:     0.85,
		graph.TypeHospital: 0.8,
		graph.TypeMarket:   0.7,
		graph.TypeSchool:   0.7,
		graph.TypeCluster:  0.65,
		graph.TypeBuilding: 0.5,
	},
	graph.TypeSensor: {
		graph.TypeTank: 0.3,
		graph.TypePump: 0.3,
		graph.TypePipe: 0.3,
	},
	graph.TypeCluster: {
		graph.TypeMarket:   0.4,
		graph.TypeSchool:   0.35,
		graph.TypeHospital: 0.3,
	},
	graph.TypeHospital: {
		graph.TypeCluster: 0.4,
	},
	graph.TypeSchool: {
		graph.TypeCluster: 0.3,
	},
	graph.TypeMarket: {
		graph.TypeCluster: 0.35,
	},
	graph.TypeBuilding: {
		graph.TypeCluster: 0.2,
	},
}

// GateTable answers gate lookups for one engine configuration. The base
// coupling data is shared package state; the table only carries the tunable
// fallbacks and modifier factors.
type GateTable struct {
	cfg *config.EngineConfig
}

// NewGateTable binds the static coupling table to engine constants.
func NewGateTable(cfg *config.EngineConfig) *GateTable {
	return &GateTable{cfg: cfg}
}

// GateFor returns the cascade gate applied to attention flowing from a node
// of targetType toward the failure of failedType under failure mode ft.
// Base coupling comes from the table, then the failure mode reshapes it:
// water failures cannot propagate into the power system, outages spare
// gravity-fed water assets but hit powered equipment harder, and access
// failures weigh heavier on facilities people must reach.
func (gt *GateTable) GateFor(failedType, targetType graph.NodeType, ft graph.FailureType) float64 {
	gate := gt.cfg.DefaultGate
	if row, ok := baseGates[failedType]; ok {
		if g, ok := row[targetType]; ok {
			gate = g
		} else if failedType == targetType {
			gate = gt.cfg.SameTypeGate
		}
	} else if failedType == targetType {
		gate = gt.cfg.SameTypeGate
	}

	switch ft {
	case graph.FailureLeak, graph.FailureContamination:
		if targetType == graph.TypePower {
			return 0.0
		}
	case graph.FailurePowerOutage:
		switch targetType {
		case graph.TypeTank, graph.TypePipe:
			// Gravity-fed: storage and distribution keep working without power.
			return 0.0
		case graph.TypePump, graph.TypeSensor:
			gate *= gt.cfg.OutageEquipmentBoost
		}
	case graph.FailureRoadDamage, graph.FailureStructural:
		switch targetType {
		case graph.TypeHospital, graph.TypeSchool:
			gate *= gt.cfg.RoadAccessBoost
		case graph.TypePower, graph.TypeTank:
			gate *= gt.cfg.RoadSupplyDamp
		}
	}

	if gate < 0 {
		return 0
	}
	if gate > 1 {
		return 1
	}
	return gate
}

// BuildGateMatrix expands GateFor over every ordered node pair: entry [i][j]
// gates the attention node i pays to neighbor j, keyed by j's type. Rows are
// identical by construction; materializing the full matrix keeps the layer
// loop free of type lookups.
func (gt *GateTable) BuildGateMatrix(g *graph.InfrastructureGraph, failedType graph.NodeType, ft graph.FailureType) [][]float64 {
	nodes := g.Nodes()
	n := len(nodes)

	byType := make(map[graph.NodeType]float64, len(graph.AllNodeTypes))
	for _, t := range graph.AllNodeTypes {
		byType[t] = gt.GateFor(failedType, t, ft)
	}

	matrix := make([][]float64, n)
	row := make([]float64, n)
	for j, node := range nodes {
		row[j] = byType[node.Type]
	}
	for i := 0; i < n; i++ {
		matrix[i] = row
	}
	return matrix
}
