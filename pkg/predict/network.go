// Package predict runs cascading failure inference over an infrastructure
// graph. A four-layer graph attention stack with fixed, seed-derived weights
// scores how strongly a single asset failure radiates into every other
// asset; relationship gates and temporal decay shape the raw attention into
// per-node impact metrics. There is no training loop: the network is a
// deterministic scoring function, calibrated through its constants.
package predict

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dd0wney/gridcast/pkg/attention"
	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
)

// Network is the fixed-weight attention stack. Safe for concurrent Predict
// calls: weights are immutable after construction and the graph is only
// read.
type Network struct {
	cfg    *config.EngineConfig
	layers []*attention.Layer
	gates  *GateTable
}

// NewNetwork builds the four-layer stack from the engine constants. All
// weights derive from cfg.Seed, so two networks with the same seed produce
// identical predictions.
func NewNetwork(cfg *config.EngineConfig) (*Network, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	dims := cfg.LayerDims()
	layers := make([]*attention.Layer, 0, len(dims))
	for i, d := range dims {
		layer, err := attention.New(attention.Config{
			InputDim:     d.In,
			OutputDim:    d.Out,
			Heads:        cfg.LayerHeads[i],
			LeakySlope:   cfg.LeakySlope,
			Epsilon:      cfg.LayerNormEpsilon,
			SoftmaxFloor: cfg.SoftmaxFloor,
		}, rng)
		if err != nil {
			return nil, fmt.Errorf("building layer %d: %w", i, err)
		}
		layers = append(layers, layer)
	}

	return &Network{cfg: cfg, layers: layers, gates: NewGateTable(cfg)}, nil
}

// Gates exposes the relationship gate table for diagnostics.
func (n *Network) Gates() *GateTable { return n.gates }

// Predict scores the cascade caused by failedID failing with the given
// failure type and severity. It returns one ImpactScore per graph node,
// including the failed node itself; thresholding and ranking happen in the
// analysis package.
func (n *Network) Predict(g *graph.InfrastructureGraph, failedID string, ft graph.FailureType, sev graph.Severity) ([]ImpactScore, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if _, err := g.Adjacency(); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	failed, err := g.GetNode(failedID)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if !ft.Valid() {
		return nil, fmt.Errorf("predict: %w: %q", graph.ErrUnknownFailureType, ft)
	}
	intensity, err := n.intensity(sev)
	if err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	fi, err := g.IndexOf(failedID)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	// Working copies: the graph's embeddings are shared state and must not
	// see the failure injection or the normalization.
	features := make([][]float64, len(nodes))
	for i, node := range nodes {
		v := make([]float64, len(node.Embedding))
		copy(v, node.Embedding)
		features[i] = v
	}
	injectFailure(features[fi], failed.Type, intensity)
	for i := range features {
		attention.L2Normalize(features[i])
	}

	gates := n.gates.BuildGateMatrix(g, failed.Type, ft)
	distances, err := g.GraphDistance(failedID)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	// Message passing pulls from in-neighbors: an edge a->b means a's
	// failure flows into b, so b attends to a.
	inputs := features
	hidden := features
	var firstOut [][]float64
	for li, layer := range n.layers {
		next := make([][]float64, len(nodes))
		for i := range nodes {
			var residual []float64
			switch li {
			case 1:
				residual = padTo(inputs[i], layer.OutputDim())
			case 2:
				residual = firstOut[i]
			}

			nbrs := g.InNeighbors(i)
			nbrFeatures := make([][]float64, len(nbrs))
			weights := make([]float64, len(nbrs))
			nbrGates := make([]float64, len(nbrs))
			for k, nb := range nbrs {
				nbrFeatures[k] = hidden[nb.Index]
				weights[k] = nb.Weight
				nbrGates[k] = gates[i][nb.Index]
			}

			out, err := layer.Forward(hidden[i], nbrFeatures, weights, nbrGates, residual)
			if err != nil {
				return nil, fmt.Errorf("predict: layer %d, node %s: %w", li, nodes[i].ID, err)
			}
			next[i] = out
		}
		if li == 0 {
			firstOut = next
		}
		hidden = next
	}

	scores := make([]ImpactScore, len(nodes))
	for i, node := range nodes {
		nodeGate := n.gates.GateFor(failed.Type, node.Type, ft)
		scores[i] = interpret(node, hidden[i], distances[node.ID], nodeGate, failed.Type, n.cfg)
	}
	return scores, nil
}

func (n *Network) intensity(sev graph.Severity) (float64, error) {
	switch sev {
	case graph.SeverityLow:
		return n.cfg.Severity.Low, nil
	case graph.SeverityMedium:
		return n.cfg.Severity.Medium, nil
	case graph.SeverityHigh:
		return n.cfg.Severity.High, nil
	case graph.SeverityCritical:
		return n.cfg.Severity.Critical, nil
	default:
		return 0, fmt.Errorf("predict: %w: %q", graph.ErrUnknownSeverity, sev)
	}
}

// injectFailure rewrites the failed node's own feature copy: the
// type-specific block goes dark (the asset no longer performs its role),
// the failure-intensity slot carries the severity and the criticality slot
// is raised by the type baseline so the network attends to the source.
func injectFailure(vec []float64, t graph.NodeType, intensity float64) {
	for i := graph.TypeSpecificLow; i <= graph.TypeSpecificHigh; i++ {
		vec[i] = 0
	}
	vec[graph.SlotFailureIntensity] = intensity
	vec[graph.SlotCriticality] = math.Min(1, vec[graph.SlotCriticality]+graph.CriticalityBaseline(t))
}

func padTo(v []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, v)
	return out
}
