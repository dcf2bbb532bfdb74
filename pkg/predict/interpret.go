package predict

import (
	"math"

	"github.com/dd0wney/gridcast/pkg/attention"
	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
)

// ImpactScore is the interpreted prediction for one node. All metrics except
// TimeToImpact are probabilities in (0,1); TimeToImpact is minutes and +Inf
// for nodes the failure cannot reach.
type ImpactScore struct {
	NodeID   string
	NodeType graph.NodeType
	Distance float64

	ImpactProbability    float64
	SeverityScore        float64
	TimeToImpact         float64
	AccessDisruption     float64
	ServiceDisruption    float64
	EconomicImpact       float64
	SafetyRisk           float64
	PopulationAffected   float64
	CascadeRisk          float64
	RecoveryDifficulty   float64
	AlternativeAvailable float64
	UrgencyScore         float64
}

// outputMultipliers scales interpreted metrics per (failed type, target
// type) pair. Unlike the attention gates, which shape message passing,
// these express how consequential an already-propagated impact is for the
// target. Values stay within [0.1, 1.3]; same-type pairs default to 1.0 and
// unknown pairs to 0.6.
//
// Package data, never mutated after init.
var outputMultipliers = map[graph.NodeType]map[graph.NodeType]float64{
	graph.TypeTank: {
		graph.TypeHospital: 1.3,
		graph.TypeCluster:  1.25,
		graph.TypePump:     1.2,
		graph.TypeSchool:   1.2,
		graph.TypePipe:     1.15,
		graph.TypeMarket:   1.0,
		graph.TypeBuilding: 0.9,
		graph.TypeSensor:   0.7,
		graph.TypeBridge:   0.4,
		graph.TypeRoad:     0.4,
		graph.TypePower:    0.3,
	},
	graph.TypePump: {
		graph.TypeHospital: 1.25,
		graph.TypePipe:     1.25,
		graph.TypeCluster:  1.2,
		graph.TypeSchool:   1.1,
		graph.TypeMarket:   1.0,
		graph.TypeTank:     0.9,
		graph.TypeBuilding: 0.9,
		graph.TypeSensor:   0.8,
		graph.TypePower:    0.4,
	},
	graph.TypePipe: {
		graph.TypeHospital: 1.25,
		graph.TypeCluster:  1.2,
		graph.TypeSchool:   1.1,
		graph.TypeMarket:   1.0,
		graph.TypeBuilding: 0.9,
		graph.TypeTank:     0.7,
		graph.TypePump:     0.7,
		graph.TypeSensor:   0.7,
		graph.TypePower:    0.3,
	},
	graph.TypePower: {
		graph.TypePump:     1.3,
		graph.TypeHospital: 1.3,
		graph.TypeSensor:   1.2,
		graph.TypeCluster:  1.2,
		graph.TypeSchool:   1.1,
		graph.TypeMarket:   1.0,
		graph.TypeBuilding: 1.0,
		graph.TypeTank:     0.5,
		graph.TypePipe:     0.4,
		graph.TypeRoad:     0.3,
		graph.TypeBridge:   0.3,
	},
	graph.TypeRoad: {
		graph.TypeHospital: 1.3,
		graph.TypeMarket:   1.2,
		graph.TypeSchool:   1.15,
		graph.TypeCluster:  1.1,
		graph.TypeBridge:   1.0,
		graph.TypeBuilding: 0.8,
		graph.TypeTank:     0.6,
		graph.TypePump:     0.6,
		graph.TypePower:    0.6,
		graph.TypePipe:     0.5,
	},
	graph.TypeBridge: {
		graph.TypeRoad:     1.25,
		graph.TypeHospital: 1.2,
		graph.TypeMarket:   1.1,
		graph.TypeSchool:   1.1,
		graph.TypeCluster:  1.0,
		graph.TypeBuilding: 0.8,
	},
	graph.TypeSensor: {
		graph.TypeTank: 0.6,
		graph.TypePump: 0.6,
		graph.TypePipe: 0.6,
	},
	graph.TypeCluster: {
		graph.TypeMarket:   0.8,
		graph.TypeSchool:   0.7,
		graph.TypeHospital: 0.6,
	},
	graph.TypeHospital: {
		graph.TypeCluster: 0.9,
	},
	graph.TypeSchool: {
		graph.TypeCluster: 0.7,
	},
	graph.TypeMarket: {
		graph.TypeCluster: 0.8,
	},
	graph.TypeBuilding: {
		graph.TypeCluster: 0.5,
	},
}

func outputMultiplier(failedType, targetType graph.NodeType) float64 {
	if row, ok := outputMultipliers[failedType]; ok {
		if m, ok := row[targetType]; ok {
			return m
		}
	}
	if failedType == targetType {
		return 1.0
	}
	return 0.6
}

// interpret maps the final-layer 12-vector for a node onto named metrics.
// Each raw channel is attenuated by temporal decay and the consequence
// multiplier, then squashed to a probability. The time channel is replaced
// outright: arrival time is physics (distance over velocity), not something
// the attention stack should estimate.
//
// gate is the cascade gate toward this node's type. A gate of exactly zero
// means the failure mode cannot couple into the asset class at all (an
// outage cannot drain a gravity-fed tank, a leak cannot darken a power
// plant), so every probability metric collapses to zero. The veto has to
// live here: softmax inside the attention layers renormalizes a uniformly
// gated neighborhood back to full weight, and sigmoid floors near 0.5
// regardless.
func interpret(node *graph.Node, raw []float64, distance, gate float64, failedType graph.NodeType, cfg *config.EngineConfig) ImpactScore {
	tti := math.Inf(1)
	if !math.IsInf(distance, 1) {
		tti = math.Max(cfg.MinTimeToImpact, distance/cfg.PropagationVelocity)
	}

	score := ImpactScore{
		NodeID:       node.ID,
		NodeType:     node.Type,
		Distance:     distance,
		TimeToImpact: tti,
	}
	if gate == 0 {
		return score
	}

	decay := TemporalDecay(distance, cfg)
	mult := outputMultiplier(failedType, node.Type)
	metric := func(i int) float64 {
		return attention.Sigmoid(raw[i] * decay * mult)
	}

	score.ImpactProbability = metric(0)
	score.SeverityScore = metric(1)
	score.AccessDisruption = metric(3)
	score.ServiceDisruption = metric(4)
	score.EconomicImpact = metric(5)
	score.SafetyRisk = metric(6)
	score.PopulationAffected = metric(7)
	score.CascadeRisk = metric(8)
	score.RecoveryDifficulty = metric(9)
	score.AlternativeAvailable = metric(10)
	score.UrgencyScore = metric(11)
	return score
}
