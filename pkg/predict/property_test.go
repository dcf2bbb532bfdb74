package predict

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
)

func TestPropertyDecayMonotonic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	cfg := config.DefaultEngine()

	properties.Property("decay never increases with distance inside the reachable band", prop.ForAll(
		func(a, b float64) bool {
			near, far := a, b
			if near > far {
				near, far = far, near
			}
			return TemporalDecay(near, &cfg) >= TemporalDecay(far, &cfg)
		},
		gen.Float64Range(0, 50),
		gen.Float64Range(0, 50),
	))

	properties.Property("beyond the cutoff the residual floor applies exactly", prop.ForAll(
		func(over float64) bool {
			return TemporalDecay(cfg.MaxDistance+over, &cfg) == cfg.UnreachableDecay
		},
		gen.Float64Range(0.001, 10_000),
	))

	properties.Property("decay stays within (0, 1]", prop.ForAll(
		func(d float64) bool {
			got := TemporalDecay(d, &cfg)
			return got > 0 && got <= 1
		},
		gen.Float64Range(0, 10_000),
	))

	properties.TestingRun(t)
}

func TestPropertyGateZeroing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	cfg := config.DefaultEngine()
	gt := NewGateTable(&cfg)

	typeIndex := gen.IntRange(0, len(graph.AllNodeTypes)-1)

	properties.Property("water failures never gate into the power domain", prop.ForAll(
		func(failedIdx int, leak bool) bool {
			failed := graph.AllNodeTypes[failedIdx]
			ft := graph.FailureContamination
			if leak {
				ft = graph.FailureLeak
			}
			return gt.GateFor(failed, graph.TypePower, ft) == 0
		},
		typeIndex,
		gen.Bool(),
	))

	properties.Property("outages never gate into gravity-fed storage or distribution", prop.ForAll(
		func(failedIdx int, tank bool) bool {
			failed := graph.AllNodeTypes[failedIdx]
			target := graph.TypePipe
			if tank {
				target = graph.TypeTank
			}
			return gt.GateFor(failed, target, graph.FailurePowerOutage) == 0
		},
		typeIndex,
		gen.Bool(),
	))

	properties.Property("gates stay within [0, 1] for every pair and failure mode", prop.ForAll(
		func(failedIdx, targetIdx, ftIdx int) bool {
			g := gt.GateFor(graph.AllNodeTypes[failedIdx], graph.AllNodeTypes[targetIdx],
				graph.AllFailureTypes[ftIdx])
			return g >= 0 && g <= 1
		},
		typeIndex,
		typeIndex,
		gen.IntRange(0, len(graph.AllFailureTypes)-1),
	))

	properties.TestingRun(t)
}
