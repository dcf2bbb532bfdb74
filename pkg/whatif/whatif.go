// Package whatif sweeps a hypothetical failure across candidate nodes to
// find the ones whose loss would hurt the village most. Every candidate
// gets a full cascade prediction on a worker pool; candidates are ranked
// by total downstream impact.
package whatif

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/dd0wney/gridcast/pkg/analysis"
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/logging"
)

// Alert level cutoffs on a candidate's headline probability.
const (
	alertCritical = 0.80
	alertHigh     = 0.50
	alertElevated = 0.20
)

// defaultTopAffected bounds the per-candidate detail kept in a sweep
// result when the request does not say otherwise.
const defaultTopAffected = 3

// ScenarioRunner produces a full impact report for one failure scenario.
// The prediction service satisfies it.
type ScenarioRunner interface {
	RunScenario(failedID string, ft graph.FailureType, sev graph.Severity) (*analysis.ImpactReport, error)
}

// SweepRequest selects the candidates and the scenario applied to each.
// Leave NodeIDs and NodeType empty to sweep every node. Pessimistic mode
// amplifies probabilities by topology weight before alerting, for planners
// who want worst-case triage.
type SweepRequest struct {
	FailureType graph.FailureType `json:"failure_type"`
	Severity    graph.Severity    `json:"severity"`
	NodeIDs     []string          `json:"node_ids,omitempty"`
	NodeType    graph.NodeType    `json:"node_type,omitempty"`
	Pessimistic bool              `json:"pessimistic"`
	TopAffected int               `json:"top_affected,omitempty"`
}

// TopImpact is the thin slice of an affected node kept per candidate.
type TopImpact struct {
	NodeID        string         `json:"node_id"`
	NodeType      graph.NodeType `json:"node_type"`
	Probability   float64        `json:"probability"`
	SeverityScore float64        `json:"severity_score"`
}

// CandidateImpact summarizes the cascade caused by one candidate failure.
// Amplified is only set on pessimistic sweeps.
type CandidateImpact struct {
	NodeID         string         `json:"node_id"`
	NodeType       graph.NodeType `json:"node_type"`
	AffectedCount  int            `json:"affected_count"`
	TotalImpact    float64        `json:"total_impact"`
	MaxProbability float64        `json:"max_probability"`
	TopologyWeight float64        `json:"topology_weight"`
	Amplified      float64        `json:"amplified_probability,omitempty"`
	Confidence     float64        `json:"confidence"`
	AlertLevel     string         `json:"alert_level"`
	TopAffected    []TopImpact    `json:"top_affected,omitempty"`
}

// SweepResult holds the ranked candidates for one sweep. Candidates are
// sorted by TotalImpact descending; ties keep graph insertion order.
type SweepResult struct {
	FailureType graph.FailureType `json:"failure_type"`
	Severity    graph.Severity    `json:"severity"`
	Pessimistic bool              `json:"pessimistic"`
	Candidates  []CandidateImpact `json:"candidates"`
	Evaluated   int               `json:"evaluated"`
	DurationMS  float64           `json:"duration_ms"`
}

// Engine fans failure scenarios out over a worker pool. One engine is
// bound to one finalized graph; build a new engine after a deployment
// swap.
type Engine struct {
	runner ScenarioRunner
	g      *graph.InfrastructureGraph
	pool   *Pool
	logger logging.Logger
}

// NewEngine builds a sweep engine with its own worker pool. The graph
// must be finalized so topology weights and neighbor lookups are
// available.
func NewEngine(runner ScenarioRunner, g *graph.InfrastructureGraph, workers int, logger logging.Logger) (*Engine, error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Finalized() {
		return nil, ErrNotFinalized
	}
	logger = logging.OrNop(logger)
	return &Engine{
		runner: runner,
		g:      g,
		pool:   NewPool(workers, logger),
		logger: logger,
	}, nil
}

// Close releases the engine's workers. In-flight sweeps finish first.
func (e *Engine) Close() { e.pool.Close() }

// Sweep runs the requested failure scenario against every candidate node
// and ranks the candidates by total downstream impact. Cancelling the
// context stops new candidates from being scheduled; predictions already
// running finish and their results are discarded.
func (e *Engine) Sweep(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	if !req.FailureType.Valid() {
		return nil, fmt.Errorf("sweep: %w: %q", graph.ErrUnknownFailureType, req.FailureType)
	}
	if !req.Severity.Valid() {
		return nil, fmt.Errorf("sweep: %w: %q", graph.ErrUnknownSeverity, req.Severity)
	}

	start := time.Now()
	candidates, err := e.candidates(req)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	topo := TopologyWeights(e.g)
	results := make([]CandidateImpact, len(candidates))
	errs := make([]error, len(candidates))

	var wg sync.WaitGroup
	for i, node := range candidates {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		ok := e.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			report, err := e.runner.RunScenario(node.ID, req.FailureType, req.Severity)
			if err != nil {
				errs[i] = fmt.Errorf("sweep candidate %s: %w", node.ID, err)
				return
			}
			results[i] = buildCandidate(node, report, topo[node.ID], req)
		})
		if !ok {
			wg.Done()
			errs[i] = ErrPoolClosed
			break
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].TotalImpact > results[b].TotalImpact
	})

	res := &SweepResult{
		FailureType: req.FailureType,
		Severity:    req.Severity,
		Pessimistic: req.Pessimistic,
		Candidates:  results,
		Evaluated:   len(results),
		DurationMS:  float64(time.Since(start).Microseconds()) / 1000.0,
	}
	e.logger.Info("what-if sweep complete",
		logging.FailureType(string(req.FailureType)),
		logging.Count(len(results)),
		logging.Float64("duration_ms", res.DurationMS),
	)
	return res, nil
}

// candidates resolves the sweep's node set. Explicit IDs win over the
// type filter; both empty means every node.
func (e *Engine) candidates(req SweepRequest) ([]*graph.Node, error) {
	if len(req.NodeIDs) > 0 {
		out := make([]*graph.Node, 0, len(req.NodeIDs))
		for _, id := range req.NodeIDs {
			n, err := e.g.GetNode(id)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	}
	if req.NodeType != "" {
		if !req.NodeType.Valid() {
			return nil, fmt.Errorf("sweep: %w: %q", graph.ErrUnknownNodeType, req.NodeType)
		}
		return e.g.NodesByType(req.NodeType), nil
	}
	return e.g.Nodes(), nil
}

func buildCandidate(node *graph.Node, report *analysis.ImpactReport, topo float64, req SweepRequest) CandidateImpact {
	total, maxProb := 0.0, 0.0
	for _, a := range report.Affected {
		total += a.Probability
		if a.Probability > maxProb {
			maxProb = a.Probability
		}
	}

	ci := CandidateImpact{
		NodeID:         node.ID,
		NodeType:       node.Type,
		AffectedCount:  len(report.Affected),
		TotalImpact:    total,
		MaxProbability: maxProb,
		TopologyWeight: topo,
		Confidence:     maxProb * topo,
	}

	headline := maxProb
	if req.Pessimistic {
		headline = math.Min(1, math.Sqrt(maxProb)*2*topo)
		ci.Amplified = headline
	}
	ci.AlertLevel = alertLevel(headline)

	keep := req.TopAffected
	if keep <= 0 {
		keep = defaultTopAffected
	}
	if keep > len(report.Affected) {
		keep = len(report.Affected)
	}
	for _, a := range report.Affected[:keep] {
		ci.TopAffected = append(ci.TopAffected, TopImpact{
			NodeID:        a.NodeID,
			NodeType:      a.NodeType,
			Probability:   a.Probability,
			SeverityScore: a.SeverityScore,
		})
	}
	return ci
}

func alertLevel(p float64) string {
	switch {
	case p >= alertCritical:
		return "critical"
	case p >= alertHigh:
		return "high"
	case p >= alertElevated:
		return "elevated"
	default:
		return "normal"
	}
}
