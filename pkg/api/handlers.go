package api

import (
	"net/http"
	"strings"

	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/service"
	"github.com/dd0wney/gridcast/pkg/snapshot"
	"github.com/dd0wney/gridcast/pkg/validation"
	"github.com/dd0wney/gridcast/pkg/visualization"
	"github.com/dd0wney/gridcast/pkg/whatif"
)

// handleSnapshot deploys a new infrastructure capture
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var snap snapshot.Snapshot
	if err := decodeJSON(r, &snap); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid snapshot body: "+err.Error())
		return
	}

	if err := s.svc.LoadSnapshot(r.Context(), &snap); err != nil {
		// Build failures are the caller's data, not server state
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, _ := s.svc.SnapshotInfo()
	s.respondJSON(w, http.StatusOK, SnapshotLoadResponse{Loaded: true, Snapshot: info})
}

// handlePredict runs one failure scenario
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := s.decodePredictRequest(w, r)
	if !ok {
		return
	}

	report, err := s.svc.Predict(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

// handleWhatIf sweeps a failure scenario over candidate nodes
func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var raw validation.WhatIfRequest
	if err := decodeJSON(r, &raw); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validation.ValidateWhatIfRequest(&raw); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.svc.WhatIf(r.Context(), whatif.SweepRequest{
		FailureType: graph.FailureType(raw.FailureType),
		Severity:    graph.Severity(raw.Severity),
		NodeIDs:     raw.NodeIDs,
		NodeType:    graph.NodeType(raw.NodeType),
		Pessimistic: raw.Pessimistic,
		TopAffected: raw.TopAffected,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleVisualization predicts and renders one scenario in a single call
func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := s.decodePredictRequest(w, r)
	if !ok {
		return
	}

	report, err := s.svc.Predict(r.Context(), req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	g, err := s.svc.Graph()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	payload, err := visualization.BuildPayload(g, report, nil)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, payload)
}

// handleNodes lists deployed nodes, optionally by ?type=
func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	var filter graph.NodeType
	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := graph.ParseNodeType(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "unknown node type: "+raw)
			return
		}
		filter = parsed
	}

	nodes, err := s.svc.Nodes(filter)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	resp := NodesResponse{Count: len(nodes), Type: string(filter)}
	resp.Nodes = make([]NodeResponse, 0, len(nodes))
	for _, n := range nodes {
		resp.Nodes = append(resp.Nodes, toNodeResponse(n))
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleNode serves /api/v1/nodes/{id}
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/nodes/")
	if id == "" || strings.Contains(id, "/") {
		s.respondError(w, http.StatusBadRequest, "invalid node id")
		return
	}

	node, err := s.svc.GetNode(id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toNodeResponse(node))
}

// handleStats summarizes the deployed graph
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := s.svc.Stats()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) decodePredictRequest(w http.ResponseWriter, r *http.Request) (service.PredictRequest, bool) {
	var raw validation.PredictRequest
	if err := decodeJSON(r, &raw); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return service.PredictRequest{}, false
	}
	if err := validation.ValidatePredictRequest(&raw); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return service.PredictRequest{}, false
	}
	return service.PredictRequest{
		NodeID:      raw.NodeID,
		FailureType: graph.FailureType(raw.FailureType),
		Severity:    graph.Severity(raw.Severity),
	}, true
}
