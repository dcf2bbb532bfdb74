package analysis

import (
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/predict"
)

// waterFailure reports whether the failure mode travels through the water
// system.
func waterFailure(ft graph.FailureType) bool {
	switch ft {
	case graph.FailureLeak, graph.FailureContamination, graph.FailureFlood:
		return true
	}
	return false
}

// accessFailure reports whether the failure mode blocks physical movement.
func accessFailure(ft graph.FailureType) bool {
	switch ft {
	case graph.FailureRoadDamage, graph.FailureStructural:
		return true
	}
	return false
}

// likelyEffects derives the human-readable consequences for one affected
// node. Rules are deterministic: same node type, failure mode and metric
// levels always produce the same list, in the same order.
func likelyEffects(nt graph.NodeType, ft graph.FailureType, s predict.ImpactScore) []string {
	var effects []string
	add := func(e string) { effects = append(effects, e) }

	switch nt {
	case graph.TypeCluster:
		if waterFailure(ft) {
			add("household water supply interrupted")
			if ft == graph.FailureContamination {
				add("tap water unsafe until tested")
			}
		}
		if ft == graph.FailurePowerOutage {
			add("households without electricity")
		}
		if s.SafetyRisk > 0.6 {
			add("vulnerable residents need welfare checks")
		}
	case graph.TypeHospital:
		add("medical services degraded")
		if ft == graph.FailurePowerOutage {
			add("running on backup generator")
		}
		if waterFailure(ft) {
			add("sterilization and sanitation compromised")
		}
		if accessFailure(ft) || s.AccessDisruption > 0.5 {
			add("ambulance access restricted")
		}
	case graph.TypeSchool:
		add("classes may be suspended")
		if waterFailure(ft) {
			add("sanitation facilities unavailable")
		}
	case graph.TypeMarket:
		add("trading disrupted")
		if s.EconomicImpact > 0.5 {
			add("vendor income losses expected")
		}
	case graph.TypePump:
		if ft == graph.FailurePowerOutage {
			add("pumping stopped, downstream pressure falling")
		} else {
			add("pumping capacity reduced")
		}
	case graph.TypeTank:
		add("stored reserve depleting")
		if ft == graph.FailureContamination {
			add("reserve unusable until flushed")
		}
	case graph.TypePipe:
		add("pressure loss in distribution segment")
	case graph.TypePower:
		add("local grid instability")
	case graph.TypeRoad:
		add("traffic rerouted, travel times increase")
	case graph.TypeBridge:
		add("crossing closed pending inspection")
	case graph.TypeSensor:
		add("monitoring blind spot in the network")
	case graph.TypeBuilding:
		add("occupants affected")
	}

	if s.ServiceDisruption > 0.7 {
		add("extended service outage likely")
	}
	if s.CascadeRisk > 0.7 {
		add("secondary failures possible")
	}
	return effects
}

// recommendations derives response actions for one affected node. Like the
// effects, the rules are a fixed table over node type, failure mode and
// metric levels.
func recommendations(nt graph.NodeType, ft graph.FailureType, s predict.ImpactScore, bucket string) []string {
	var recs []string
	add := func(r string) { recs = append(recs, r) }

	switch nt {
	case graph.TypeCluster:
		if waterFailure(ft) {
			add("arrange alternative water distribution")
		}
		if s.SafetyRisk > 0.6 {
			add("check on vulnerable residents")
		}
	case graph.TypeHospital:
		if ft == graph.FailurePowerOutage {
			add("verify backup generator fuel")
		}
		if bucket == BucketCritical {
			add("prepare patient transfer plan")
		}
		add("notify hospital administration")
	case graph.TypeSchool:
		add("inform school administration before next session")
	case graph.TypeMarket:
		add("notify market committee")
	case graph.TypePump:
		add("dispatch technician to pumping station")
		if s.AlternativeAvailable > 0.5 {
			add("switch to backup pump")
		}
	case graph.TypeTank:
		add("inspect tank and isolate if needed")
		if s.RecoveryDifficulty > 0.6 {
			add("schedule water trucking")
		}
	case graph.TypePipe:
		add("isolate the affected segment")
	case graph.TypePower:
		add("coordinate with the utility on restoration")
	case graph.TypeRoad:
		add("publish detour routes")
	case graph.TypeBridge:
		add("arrange structural inspection")
	case graph.TypeSensor:
		add("increase manual inspection rounds")
	case graph.TypeBuilding:
		add("inform building occupants")
	}

	if bucket == BucketCritical || s.UrgencyScore > 0.8 {
		add("treat as time critical")
	}
	return recs
}
