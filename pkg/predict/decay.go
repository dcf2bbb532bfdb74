package predict

import (
	"math"

	"github.com/dd0wney/gridcast/pkg/config"
)

// TemporalDecay converts a graph distance into the attenuation applied to a
// node's raw impact signal. Distance is measured in inverse-weight units and
// crossed at the configured propagation velocity. Three regimes:
//
//	unreachable or beyond MaxDistance: a residual floor, not zero, because
//	  even a disconnected asset shares staff, supplies and attention;
//	mid range: steep exponential falloff;
//	near range: gentler falloff with the exponent floored at one transit
//	  minute so immediate neighbors are not all squashed to the same value.
func TemporalDecay(distance float64, cfg *config.EngineConfig) float64 {
	if math.IsInf(distance, 1) || distance > cfg.MaxDistance {
		return cfg.UnreachableDecay
	}
	transit := distance / cfg.PropagationVelocity
	if distance > cfg.NearDistance {
		return math.Exp(-cfg.FarDecayRate * transit)
	}
	return math.Exp(-cfg.NearDecayRate * math.Max(1, transit))
}
