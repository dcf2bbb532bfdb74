package service

import (
	"context"
	"time"

	"github.com/dd0wney/gridcast/pkg/analysis"
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/whatif"
)

// scenarioRunner pins one deployment's graph for the lifetime of a sweep,
// so a snapshot swap mid-sweep cannot mix candidates across graphs.
type scenarioRunner struct {
	svc *Service
	g   *graph.InfrastructureGraph
}

func (r scenarioRunner) RunScenario(failedID string, ft graph.FailureType, sev graph.Severity) (*analysis.ImpactReport, error) {
	return r.svc.predictOn(r.g, failedID, ft, sev)
}

// WhatIf sweeps a failure scenario over candidate nodes of the deployed
// graph and ranks them by total downstream impact.
func (s *Service) WhatIf(ctx context.Context, req whatif.SweepRequest) (*whatif.SweepResult, error) {
	dep := s.current.Load()
	if dep == nil {
		return nil, ErrNotInitialized
	}

	start := time.Now()
	engine, err := whatif.NewEngine(scenarioRunner{svc: s, g: dep.graph}, dep.graph, s.cfg.Server.WhatIfWorkers, s.logger)
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	result, err := engine.Sweep(ctx, req)
	if s.registry != nil {
		if err != nil {
			s.registry.RecordWhatIfSweep("error", time.Since(start), 0)
		} else {
			s.registry.RecordWhatIfSweep("success", time.Since(start), result.Evaluated)
		}
	}
	return result, err
}
