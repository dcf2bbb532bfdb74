// Package analysis turns raw prediction scores into actionable impact
// reports: adaptive acceptance thresholds, severity buckets, ranked affected
// lists, propagation paths and an overall assessment for responders.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/logging"
	"github.com/dd0wney/gridcast/pkg/predict"
)

// Analyzer filters and ranks prediction scores into reports.
type Analyzer struct {
	cfg    *config.EngineConfig
	logger logging.Logger
}

// NewAnalyzer builds an analyzer over the shared engine constants.
func NewAnalyzer(cfg *config.EngineConfig, logger logging.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logging.OrNop(logger)}
}

// Analyze converts per-node scores into an ImpactReport. The failed node is
// excluded from the affected list; every other node is accepted when its
// impact probability strictly exceeds its adaptive threshold.
func (a *Analyzer) Analyze(g *graph.InfrastructureGraph, failedID string, ft graph.FailureType, sev graph.Severity, scores []predict.ImpactScore) (*ImpactReport, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(scores) == 0 {
		return nil, ErrNoScores
	}
	start := time.Now()

	failed, err := g.GetNode(failedID)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	paths, err := g.BFSPaths(failedID, a.cfg.MaxPathDepth)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	avgDeg := g.AverageDegree()
	affected := make([]AffectedNode, 0, len(scores))
	for _, score := range scores {
		if score.NodeID == failedID {
			continue
		}
		node, err := g.GetNode(score.NodeID)
		if err != nil {
			return nil, fmt.Errorf("analyze: scored node: %w", err)
		}
		if score.ImpactProbability <= a.threshold(node, score, avgDeg) {
			continue
		}
		affected = append(affected, a.buildAffected(node, ft, score, paths[node.ID]))
	}

	// Stable: equal severities keep graph insertion order, so reports are
	// reproducible run to run.
	sort.SliceStable(affected, func(i, j int) bool {
		return affected[i].SeverityScore > affected[j].SeverityScore
	})

	report := &ImpactReport{
		ID:           uuid.New().String(),
		GeneratedAt:  time.Now().UTC(),
		FailedNodeID: failed.ID,
		FailedType:   failed.Type,
		FailureType:  ft,
		Severity:     sev,
		Affected:     affected,
		Assessment:   buildAssessment(failed, ft, sev, affected),
		Stats: ReportStats{
			NodesEvaluated: len(scores) - 1,
			NodesAccepted:  len(affected),
			DurationMS:     float64(time.Since(start).Microseconds()) / 1000.0,
		},
	}

	a.logger.Info("impact analysis complete",
		logging.ReportID(report.ID),
		logging.NodeID(failedID),
		logging.FailureType(string(ft)),
		logging.Count(len(affected)),
		logging.String("risk_level", report.Assessment.RiskLevel),
	)
	return report, nil
}

// threshold computes the adaptive acceptance bar for one node. Critical,
// well-connected, quickly-reached nodes are easier to accept; peripheral or
// distant nodes must show a much stronger signal.
func (a *Analyzer) threshold(node *graph.Node, score predict.ImpactScore, avgDeg float64) float64 {
	t := a.cfg.BaseThreshold
	t += (1 - node.Criticality) * a.cfg.CriticalityWeight

	ratio := 1.0
	if avgDeg > 0 {
		ratio = math.Min(float64(node.Degree)/avgDeg, 1)
	}
	t += (1 - ratio) * a.cfg.ConnectivityWeight

	if math.IsInf(score.TimeToImpact, 1) || score.TimeToImpact > a.cfg.DistantMinutes {
		t += a.cfg.DistantPenalty
	}
	return t
}

func (a *Analyzer) buildAffected(node *graph.Node, ft graph.FailureType, score predict.ImpactScore, path []string) AffectedNode {
	bucket := severityBucket(score.SeverityScore)
	return AffectedNode{
		NodeID:        node.ID,
		NodeType:      node.Type,
		Probability:   math.Min(score.ImpactProbability, a.cfg.DisplayProbabilityCap),
		Severity:      bucket,
		SeverityScore: score.SeverityScore,
		TimeToImpact:  score.TimeToImpact,
		Distance:      score.Distance,
		Metrics: Metrics{
			AccessDisruption:     score.AccessDisruption,
			ServiceDisruption:    score.ServiceDisruption,
			EconomicImpact:       score.EconomicImpact,
			SafetyRisk:           score.SafetyRisk,
			PopulationAffected:   score.PopulationAffected,
			CascadeRisk:          score.CascadeRisk,
			RecoveryDifficulty:   score.RecoveryDifficulty,
			AlternativeAvailable: score.AlternativeAvailable,
			UrgencyScore:         score.UrgencyScore,
		},
		LikelyEffects:   likelyEffects(node.Type, ft, score),
		Recommendations: recommendations(node.Type, ft, score, bucket),
		PropagationPath: path,
	}
}

// severityBucket labels a severity score.
func severityBucket(score float64) string {
	switch {
	case score >= 0.75:
		return BucketCritical
	case score >= 0.5:
		return BucketHigh
	case score >= 0.25:
		return BucketMedium
	default:
		return BucketLow
	}
}
