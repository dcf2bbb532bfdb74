package analysis

import (
	"fmt"

	"github.com/dd0wney/gridcast/pkg/graph"
)

// baseRecoveryHours is the nominal repair time per failure mode, before
// scaling by asset type and severity.
var baseRecoveryHours = map[graph.FailureType]float64{
	graph.FailureLeak:          6,
	graph.FailureMalfunction:   12,
	graph.FailurePowerOutage:   8,
	graph.FailureContamination: 24,
	graph.FailureRoadDamage:    48,
	graph.FailureStructural:    72,
	graph.FailureFlood:         96,
}

// typeRecoveryFactor scales recovery by how hard the failed asset is to
// repair or replace in a village setting.
var typeRecoveryFactor = map[graph.NodeType]float64{
	graph.TypeBridge:   2.0,
	graph.TypePower:    1.5,
	graph.TypeHospital: 1.4,
	graph.TypeTank:     1.2,
	graph.TypeRoad:     1.2,
	graph.TypePump:     1.0,
	graph.TypeSchool:   1.0,
	graph.TypeCluster:  1.0,
	graph.TypeBuilding: 0.9,
	graph.TypePipe:     0.8,
	graph.TypeMarket:   0.8,
	graph.TypeSensor:   0.3,
}

var severityRecoveryMult = map[graph.Severity]float64{
	graph.SeverityLow:      0.5,
	graph.SeverityMedium:   1.0,
	graph.SeverityHigh:     1.5,
	graph.SeverityCritical: 2.0,
}

// populationWeights estimates people served per affected asset type.
var populationWeights = map[graph.NodeType]int{
	graph.TypeHospital: 500,
	graph.TypeSchool:   300,
	graph.TypeCluster:  200,
	graph.TypeMarket:   150,
	graph.TypeBuilding: 10,
}

func buildAssessment(failed *graph.Node, ft graph.FailureType, sev graph.Severity, affected []AffectedNode) OverallAssessment {
	countsBySeverity := make(map[string]int)
	countsByType := make(map[graph.NodeType]int)
	probSum := 0.0
	population := 0
	for _, n := range affected {
		countsBySeverity[n.Severity]++
		countsByType[n.NodeType]++
		probSum += n.Probability
		population += populationWeights[n.NodeType]
	}

	factor := typeRecoveryFactor[failed.Type]
	if factor == 0 {
		factor = 1
	}
	mult := severityRecoveryMult[sev]
	if mult == 0 {
		mult = 1
	}
	recovery := baseRecoveryHours[ft]*factor*mult + 2*probSum

	summary := fmt.Sprintf(
		"%s %s at %s: %d assets affected (%d critical, %d high), roughly %d people impacted, recovery around %.0f hours.",
		sev, ft, failed.ID, len(affected),
		countsBySeverity[BucketCritical], countsBySeverity[BucketHigh],
		population, recovery)
	if len(affected) == 0 {
		summary = fmt.Sprintf("%s %s at %s: no downstream assets cross the impact threshold.",
			sev, ft, failed.ID)
	}

	return OverallAssessment{
		RiskLevel:              riskLevel(countsBySeverity),
		Summary:                summary,
		CountsBySeverity:       countsBySeverity,
		CountsByType:           countsByType,
		PriorityActions:        priorityActions(ft, countsBySeverity, countsByType),
		EstimatedRecoveryHours: recovery,
		PopulationAffected:     population,
	}
}

func riskLevel(countsBySeverity map[string]int) string {
	switch {
	case countsBySeverity[BucketCritical] > 0:
		return "critical"
	case countsBySeverity[BucketHigh] > 0:
		return "high"
	case countsBySeverity[BucketMedium] > 0:
		return "moderate"
	default:
		return "low"
	}
}

// priorityActions builds the ordered response checklist. Actions follow from
// which asset classes are hit; a critical bucket anywhere escalates the
// whole response.
func priorityActions(ft graph.FailureType, bySeverity map[string]int, byType map[graph.NodeType]int) []string {
	var actions []string

	if byType[graph.TypeHospital] > 0 {
		actions = append(actions, "confirm hospital contingency plans")
	}
	if byType[graph.TypeCluster] > 0 {
		if waterFailure(ft) {
			actions = append(actions, "set up water distribution points")
		}
		if ft == graph.FailurePowerOutage {
			actions = append(actions, "coordinate restoration priorities with the utility")
		}
	}
	if byType[graph.TypePump]+byType[graph.TypeTank]+byType[graph.TypePipe] > 0 {
		actions = append(actions, "stage repair crews for the water network")
	}
	if byType[graph.TypeRoad]+byType[graph.TypeBridge] > 0 {
		actions = append(actions, "publish alternative routes")
	}
	if byType[graph.TypeSchool] > 0 {
		actions = append(actions, "notify school administrations")
	}
	if len(actions) == 0 {
		actions = append(actions, "monitor the situation")
	}

	if bySeverity[BucketCritical] > 0 {
		actions = append([]string{"activate emergency response team"}, actions...)
	}
	return actions
}
