// Package service is the engine's front door: it owns the prediction
// network, the currently deployed infrastructure graph, and the query
// operations the transport layers expose. Snapshot loads build a fresh
// graph and publish it with one atomic swap, so predictions in flight
// keep reading the graph they started on.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dd0wney/gridcast/pkg/analysis"
	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/logging"
	"github.com/dd0wney/gridcast/pkg/metrics"
	"github.com/dd0wney/gridcast/pkg/predict"
	"github.com/dd0wney/gridcast/pkg/snapshot"
	"github.com/dd0wney/gridcast/pkg/validation"
)

// SnapshotInfo describes the capture behind the deployed graph.
type SnapshotInfo struct {
	Version    string    `json:"version"`
	CapturedAt time.Time `json:"captured_at"`
	LoadedAt   time.Time `json:"loaded_at"`
	Nodes      int       `json:"nodes"`
	Edges      int       `json:"edges"`
}

// PredictRequest identifies one failure scenario against the deployed graph.
type PredictRequest struct {
	NodeID      string
	FailureType graph.FailureType
	Severity    graph.Severity
}

// deployment binds a finalized graph to the snapshot it came from.
// Deployments are immutable once published.
type deployment struct {
	graph *graph.InfrastructureGraph
	info  SnapshotInfo
}

// Service runs predictions against the current deployment. The network is
// built once at construction from the configured seed; two services built
// from the same config predict identically.
type Service struct {
	cfg      *config.Config
	network  *predict.Network
	analyzer *analysis.Analyzer
	current  atomic.Pointer[deployment]
	logger   logging.Logger
	registry *metrics.Registry
	started  time.Time
}

// New builds the service and its seeded prediction network. metrics may be
// nil when no registry is wired (tests, the example binary).
func New(cfg *config.Config, logger logging.Logger, registry *metrics.Registry) (*Service, error) {
	network, err := predict.NewNetwork(&cfg.Engine)
	if err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)
	return &Service{
		cfg:      cfg,
		network:  network,
		analyzer: analysis.NewAnalyzer(&cfg.Engine, logger),
		logger:   logger,
		registry: registry,
		started:  time.Now(),
	}, nil
}

// LoadSnapshot builds a fresh graph from the capture and atomically swaps
// it in. On any error the previous deployment stays live.
func (s *Service) LoadSnapshot(ctx context.Context, snap *snapshot.Snapshot) error {
	start := time.Now()

	if err := validation.ValidateSnapshot(snap); err != nil {
		s.recordSnapshotLoad("invalid", start, nil)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := snapshot.Build(snap, s.cfg.Proximity, s.logger)
	if err != nil {
		s.recordSnapshotLoad("error", start, nil)
		return err
	}

	dep := &deployment{
		graph: g,
		info: SnapshotInfo{
			Version:    snap.Version,
			CapturedAt: snap.CapturedAt,
			LoadedAt:   time.Now(),
			Nodes:      g.NodeCount(),
			Edges:      g.EdgeCount(),
		},
	}
	s.current.Store(dep)
	s.recordSnapshotLoad("success", start, g)

	s.logger.Info("snapshot deployed",
		logging.String("version", snap.Version),
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Latency(time.Since(start)))
	return nil
}

// Predict runs one failure scenario against the deployed graph.
func (s *Service) Predict(ctx context.Context, req PredictRequest) (*analysis.ImpactReport, error) {
	dep := s.current.Load()
	if dep == nil {
		return nil, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.predictOn(dep.graph, req.NodeID, req.FailureType, req.Severity)
}

// predictOn runs the network and analyzer against one pinned graph. What-if
// sweeps call it directly so a mid-sweep snapshot swap cannot mix graphs.
func (s *Service) predictOn(g *graph.InfrastructureGraph, failedID string, ft graph.FailureType, sev graph.Severity) (*analysis.ImpactReport, error) {
	start := time.Now()

	if _, err := g.GetNode(failedID); err != nil {
		s.recordPrediction(string(ft), "not_found", start, nil)
		return nil, unknownNodeError(failedID, g)
	}

	scores, err := s.network.Predict(g, failedID, ft, sev)
	if err != nil {
		s.recordPrediction(string(ft), "error", start, nil)
		return nil, err
	}
	report, err := s.analyzer.Analyze(g, failedID, ft, sev, scores)
	if err != nil {
		s.recordPrediction(string(ft), "error", start, nil)
		return nil, err
	}

	s.recordPrediction(string(ft), "success", start, report)
	s.logger.Info("prediction complete",
		logging.ReportID(report.ID),
		logging.NodeID(failedID),
		logging.FailureType(string(ft)),
		logging.Severity(string(sev)),
		logging.Count(len(report.Affected)),
		logging.Latency(time.Since(start)))
	return report, nil
}

// GetNode returns one node of the deployed graph.
func (s *Service) GetNode(id string) (*graph.Node, error) {
	dep := s.current.Load()
	if dep == nil {
		return nil, ErrNotInitialized
	}
	node, err := dep.graph.GetNode(id)
	if err != nil {
		return nil, unknownNodeError(id, dep.graph)
	}
	return node, nil
}

// Nodes lists deployed nodes, optionally filtered by type. An empty filter
// returns every node in insertion order.
func (s *Service) Nodes(typeFilter graph.NodeType) ([]*graph.Node, error) {
	dep := s.current.Load()
	if dep == nil {
		return nil, ErrNotInitialized
	}
	if typeFilter == "" {
		return dep.graph.Nodes(), nil
	}
	return dep.graph.NodesByType(typeFilter), nil
}

// Stats summarizes the deployed graph.
func (s *Service) Stats() (graph.Stats, error) {
	dep := s.current.Load()
	if dep == nil {
		return graph.Stats{}, ErrNotInitialized
	}
	return dep.graph.Stats(), nil
}

// SnapshotInfo reports the deployed capture, when there is one.
func (s *Service) SnapshotInfo() (SnapshotInfo, bool) {
	dep := s.current.Load()
	if dep == nil {
		return SnapshotInfo{}, false
	}
	return dep.info, true
}

// Ready reports whether a graph is deployed and predictions can run.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Graph returns the deployed graph, for read-only consumers such as the
// visualization payload builder.
func (s *Service) Graph() (*graph.InfrastructureGraph, error) {
	dep := s.current.Load()
	if dep == nil {
		return nil, ErrNotInitialized
	}
	return dep.graph, nil
}

func (s *Service) recordSnapshotLoad(status string, start time.Time, g *graph.InfrastructureGraph) {
	if s.registry == nil {
		return
	}
	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = g.NodeCount(), g.EdgeCount()
	}
	s.registry.RecordSnapshotLoad(status, time.Since(start), nodes, edges)
}

func (s *Service) recordPrediction(failureType, status string, start time.Time, report *analysis.ImpactReport) {
	if s.registry == nil {
		return
	}
	affected := 0
	if report != nil {
		affected = len(report.Affected)
		for _, n := range report.Affected {
			s.registry.RecordAcceptedProbability(n.Probability)
		}
	}
	s.registry.RecordPrediction(failureType, status, time.Since(start), affected)
}
