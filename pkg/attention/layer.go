// Package attention implements the multi-head graph attention layer used by
// the cascade prediction network. Weights are Xavier-initialized from an
// injected random source, so two layers built from the same seed compute
// identical outputs.
package attention

import (
	"fmt"
	"math"
	"math/rand"
)

// Config describes one attention layer.
type Config struct {
	InputDim     int
	OutputDim    int
	Heads        int
	LeakySlope   float64
	Epsilon      float64
	SoftmaxFloor float64
}

// head holds the per-head attention weights. Query, key and value act as
// element-wise feature masks; transform projects the aggregated features
// down to this head's slice of the output.
type head struct {
	query     []float64
	key       []float64
	value     []float64
	transform [][]float64 // InputDim x headDim
}

// Layer is a single multi-head graph attention layer.
type Layer struct {
	cfg     Config
	headDim int
	heads   []head
	outProj [][]float64 // OutputDim x OutputDim
	outBias []float64
	gamma   []float64
	beta    []float64
}

// New builds a layer, drawing every weight from rng in a fixed order.
// Reusing a seeded source reproduces the exact same layer.
func New(cfg Config, rng *rand.Rand) (*Layer, error) {
	if cfg.InputDim <= 0 || cfg.OutputDim <= 0 || cfg.Heads <= 0 {
		return nil, fmt.Errorf("%w: input=%d output=%d heads=%d",
			ErrInvalidDimension, cfg.InputDim, cfg.OutputDim, cfg.Heads)
	}
	if cfg.OutputDim%cfg.Heads != 0 {
		return nil, fmt.Errorf("%w: output=%d heads=%d",
			ErrInvalidHeadCount, cfg.OutputDim, cfg.Heads)
	}

	headDim := cfg.OutputDim / cfg.Heads
	l := &Layer{
		cfg:     cfg,
		headDim: headDim,
		heads:   make([]head, cfg.Heads),
		gamma:   make([]float64, cfg.OutputDim),
		beta:    make([]float64, cfg.OutputDim),
	}

	vecLimit := xavierLimit(cfg.InputDim, cfg.InputDim)
	transformLimit := xavierLimit(cfg.InputDim, headDim)
	for h := range l.heads {
		l.heads[h] = head{
			query:     drawVector(rng, cfg.InputDim, vecLimit),
			key:       drawVector(rng, cfg.InputDim, vecLimit),
			value:     drawVector(rng, cfg.InputDim, vecLimit),
			transform: drawMatrix(rng, cfg.InputDim, headDim, transformLimit),
		}
	}

	projLimit := xavierLimit(cfg.OutputDim, cfg.OutputDim)
	l.outProj = drawMatrix(rng, cfg.OutputDim, cfg.OutputDim, projLimit)
	l.outBias = drawVector(rng, cfg.OutputDim, projLimit)

	for i := range l.gamma {
		l.gamma[i] = 1.0
	}
	return l, nil
}

// OutputDim reports the layer's output width.
func (l *Layer) OutputDim() int { return l.cfg.OutputDim }

// InputDim reports the layer's expected input width.
func (l *Layer) InputDim() int { return l.cfg.InputDim }

// Forward computes the attended output for one node. neighbors carries the
// feature vectors of the node's upstream neighbors, structWeights their
// structural edge weights and gates the per-neighbor cascade gates (nil means
// all 1). Neighbors with a positive structural weight form the softmax set;
// a zero gate keeps its neighbor inside the denominator, deliberately
// diluting the attention paid to everyone else. residual, when non-nil, is
// added before layer normalization.
func (l *Layer) Forward(node []float64, neighbors [][]float64, structWeights, gates, residual []float64) ([]float64, error) {
	if len(node) != l.cfg.InputDim {
		return nil, fmt.Errorf("%w: node has %d features, want %d",
			ErrDimensionMismatch, len(node), l.cfg.InputDim)
	}
	if len(structWeights) != len(neighbors) {
		return nil, fmt.Errorf("%w: %d neighbors, %d structural weights",
			ErrDimensionMismatch, len(neighbors), len(structWeights))
	}
	if gates != nil && len(gates) != len(neighbors) {
		return nil, fmt.Errorf("%w: %d neighbors, %d gates",
			ErrDimensionMismatch, len(neighbors), len(gates))
	}
	if residual != nil && len(residual) != l.cfg.OutputDim {
		return nil, fmt.Errorf("%w: residual has %d features, want %d",
			ErrDimensionMismatch, len(residual), l.cfg.OutputDim)
	}
	for i, nbr := range neighbors {
		if len(nbr) != l.cfg.InputDim {
			return nil, fmt.Errorf("%w: neighbor %d has %d features, want %d",
				ErrDimensionMismatch, i, len(nbr), l.cfg.InputDim)
		}
	}

	eligible := make([]int, 0, len(neighbors))
	for i, w := range structWeights {
		if w > 0 {
			eligible = append(eligible, i)
		}
	}

	out := make([]float64, l.cfg.OutputDim)
	if len(eligible) == 0 {
		// An isolated node still emits its bias so downstream layers see a
		// stable baseline instead of zeros.
		copy(out, l.outBias)
	} else {
		scale := math.Sqrt(float64(l.cfg.InputDim))
		concat := make([]float64, l.cfg.OutputDim)
		scores := make([]float64, len(eligible))
		agg := make([]float64, l.cfg.InputDim)

		for h := range l.heads {
			hd := &l.heads[h]

			for si, ni := range eligible {
				nbr := neighbors[ni]
				s := 0.0
				for d := 0; d < l.cfg.InputDim; d++ {
					s += hd.query[d] * node[d] * hd.key[d] * nbr[d]
				}
				s = LeakyReLU(s/scale, l.cfg.LeakySlope) * structWeights[ni]
				if gates != nil {
					s *= gates[ni]
				}
				scores[si] = s
			}
			Softmax(scores, l.cfg.SoftmaxFloor)

			for d := range agg {
				agg[d] = 0
			}
			for si, ni := range eligible {
				a := scores[si]
				if a == 0 {
					continue
				}
				nbr := neighbors[ni]
				for d := 0; d < l.cfg.InputDim; d++ {
					agg[d] += a * hd.value[d] * nbr[d]
				}
			}

			base := h * l.headDim
			for o := 0; o < l.headDim; o++ {
				sum := 0.0
				for d := 0; d < l.cfg.InputDim; d++ {
					sum += agg[d] * hd.transform[d][o]
				}
				concat[base+o] = LeakyReLU(sum, l.cfg.LeakySlope)
			}
		}

		for o := 0; o < l.cfg.OutputDim; o++ {
			sum := l.outBias[o]
			for d := 0; d < l.cfg.OutputDim; d++ {
				sum += concat[d] * l.outProj[d][o]
			}
			out[o] = sum
		}
	}

	if residual != nil {
		for i := range out {
			out[i] += residual[i]
		}
	}
	LayerNorm(out, l.gamma, l.beta, l.cfg.Epsilon)
	return out, nil
}

// xavierLimit is the Glorot uniform bound sqrt(6/(fanIn+fanOut)).
func xavierLimit(fanIn, fanOut int) float64 {
	return math.Sqrt(6.0 / float64(fanIn+fanOut))
}

func drawVector(rng *rand.Rand, n int, limit float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * limit
	}
	return v
}

func drawMatrix(rng *rand.Rand, rows, cols int, limit float64) [][]float64 {
	m := make([][]float64, rows)
	for r := range m {
		m[r] = drawVector(rng, cols, limit)
	}
	return m
}
