package analysis

import (
	"time"

	"github.com/dd0wney/gridcast/pkg/graph"
)

// Severity buckets for affected nodes. Distinct from the injected failure
// severity: these label predicted downstream impact.
const (
	BucketCritical = "critical"
	BucketHigh     = "high"
	BucketMedium   = "medium"
	BucketLow      = "low"
)

// Metrics carries the secondary impact channels for one affected node.
type Metrics struct {
	AccessDisruption     float64 `json:"access_disruption"`
	ServiceDisruption    float64 `json:"service_disruption"`
	EconomicImpact       float64 `json:"economic_impact"`
	SafetyRisk           float64 `json:"safety_risk"`
	PopulationAffected   float64 `json:"population_affected"`
	CascadeRisk          float64 `json:"cascade_risk"`
	RecoveryDifficulty   float64 `json:"recovery_difficulty"`
	AlternativeAvailable float64 `json:"alternative_available"`
	UrgencyScore         float64 `json:"urgency_score"`
}

// AffectedNode is one entry of the ranked impact list. Probability is
// display-capped; TimeToImpact is minutes and always finite for accepted
// nodes (unreachable nodes never cross the acceptance threshold).
type AffectedNode struct {
	NodeID          string         `json:"node_id"`
	NodeType        graph.NodeType `json:"node_type"`
	Probability     float64        `json:"probability"`
	Severity        string         `json:"severity"`
	SeverityScore   float64        `json:"severity_score"`
	TimeToImpact    float64        `json:"time_to_impact_minutes"`
	Distance        float64        `json:"distance"`
	Metrics         Metrics        `json:"metrics"`
	LikelyEffects   []string       `json:"likely_effects,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	PropagationPath []string       `json:"propagation_path,omitempty"`
}

// OverallAssessment summarizes a cascade for responders.
type OverallAssessment struct {
	RiskLevel              string                 `json:"risk_level"`
	Summary                string                 `json:"summary"`
	CountsBySeverity       map[string]int         `json:"counts_by_severity"`
	CountsByType           map[graph.NodeType]int `json:"counts_by_type"`
	PriorityActions        []string               `json:"priority_actions"`
	EstimatedRecoveryHours float64                `json:"estimated_recovery_hours"`
	PopulationAffected     int                    `json:"population_affected"`
}

// ReportStats records how the analysis went.
type ReportStats struct {
	NodesEvaluated int     `json:"nodes_evaluated"`
	NodesAccepted  int     `json:"nodes_accepted"`
	DurationMS     float64 `json:"duration_ms"`
}

// ImpactReport is the full prediction result for one failure scenario.
// Affected is sorted by SeverityScore descending; marshaling and
// unmarshaling the report preserves the ranking.
type ImpactReport struct {
	ID           string            `json:"id"`
	GeneratedAt  time.Time         `json:"generated_at"`
	FailedNodeID string            `json:"failed_node_id"`
	FailedType   graph.NodeType    `json:"failed_node_type"`
	FailureType  graph.FailureType `json:"failure_type"`
	Severity     graph.Severity    `json:"severity"`
	Affected     []AffectedNode    `json:"affected"`
	Assessment   OverallAssessment `json:"assessment"`
	Stats        ReportStats       `json:"stats"`
}
