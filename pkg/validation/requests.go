package validation

import (
	"errors"
	"fmt"

	"github.com/dd0wney/gridcast/pkg/graph"
)

// PredictRequest represents a request to predict the impact of one failure
type PredictRequest struct {
	NodeID      string `json:"node_id" validate:"required,min=1,max=100"`
	FailureType string `json:"failure_type" validate:"required"`
	Severity    string `json:"severity" validate:"required"`
}

// WhatIfRequest represents a request to sweep a failure scenario over
// candidate nodes
type WhatIfRequest struct {
	FailureType string   `json:"failure_type" validate:"required"`
	Severity    string   `json:"severity" validate:"required"`
	NodeIDs     []string `json:"node_ids" validate:"omitempty,max=500,dive,min=1,max=100"`
	NodeType    string   `json:"node_type" validate:"omitempty,max=20"`
	Pessimistic bool     `json:"pessimistic"`
	TopAffected int      `json:"top_affected" validate:"omitempty,min=1,max=50"`
}

// ValidatePredictRequest validates a prediction request against the closed
// failure-type and severity sets
func ValidatePredictRequest(req *PredictRequest) error {
	if req == nil {
		return errors.New("predict request cannot be nil")
	}

	// Validate using struct tags
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateNodeID(req.NodeID); err != nil {
		return fmt.Errorf("NodeID: %w", err)
	}
	if _, err := graph.ParseFailureType(req.FailureType); err != nil {
		return fmt.Errorf("FailureType: '%s' is not a known failure type", req.FailureType)
	}
	if _, err := graph.ParseSeverity(req.Severity); err != nil {
		return fmt.Errorf("Severity: '%s' is not a known severity (low, medium, high, critical)", req.Severity)
	}

	return nil
}

// ValidateWhatIfRequest validates a what-if sweep request
func ValidateWhatIfRequest(req *WhatIfRequest) error {
	if req == nil {
		return errors.New("what-if request cannot be nil")
	}

	// Validate using struct tags
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if _, err := graph.ParseFailureType(req.FailureType); err != nil {
		return fmt.Errorf("FailureType: '%s' is not a known failure type", req.FailureType)
	}
	if _, err := graph.ParseSeverity(req.Severity); err != nil {
		return fmt.Errorf("Severity: '%s' is not a known severity (low, medium, high, critical)", req.Severity)
	}
	if req.NodeType != "" {
		if _, err := graph.ParseNodeType(req.NodeType); err != nil {
			return fmt.Errorf("NodeType: '%s' is not a known node type", req.NodeType)
		}
	}
	for i, id := range req.NodeIDs {
		if err := ValidateNodeID(id); err != nil {
			return fmt.Errorf("NodeIDs: entry %d: %w", i, err)
		}
	}
	if len(req.NodeIDs) > 0 && req.NodeType != "" {
		return errors.New("NodeIDs and NodeType are mutually exclusive")
	}

	return nil
}
