package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/gridcast/pkg/analysis"
	"github.com/dd0wney/gridcast/pkg/whatif"
)

// createAffectedNodeType maps one ranked affected node, metrics flattened
// into the object so dashboards can select exactly what they chart.
func createAffectedNodeType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "AffectedNode",
		Fields: graphql.Fields{
			"nodeId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.NodeID, nil
					}
					return nil, nil
				},
			},
			"nodeType": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return string(n.NodeType), nil
					}
					return nil, nil
				},
			},
			"probability": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Probability, nil
					}
					return nil, nil
				},
			},
			"severity": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Severity, nil
					}
					return nil, nil
				},
			},
			"severityScore": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.SeverityScore, nil
					}
					return nil, nil
				},
			},
			"timeToImpactMinutes": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.TimeToImpact, nil
					}
					return nil, nil
				},
			},
			"accessDisruption": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Metrics.AccessDisruption, nil
					}
					return nil, nil
				},
			},
			"serviceDisruption": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Metrics.ServiceDisruption, nil
					}
					return nil, nil
				},
			},
			"safetyRisk": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Metrics.SafetyRisk, nil
					}
					return nil, nil
				},
			},
			"cascadeRisk": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Metrics.CascadeRisk, nil
					}
					return nil, nil
				},
			},
			"urgencyScore": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Metrics.UrgencyScore, nil
					}
					return nil, nil
				},
			},
			"likelyEffects": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.LikelyEffects, nil
					}
					return nil, nil
				},
			},
			"recommendations": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.Recommendations, nil
					}
					return nil, nil
				},
			},
			"propagationPath": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if n, ok := p.Source.(analysis.AffectedNode); ok {
						return n.PropagationPath, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createAssessmentType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "OverallAssessment",
		Fields: graphql.Fields{
			"riskLevel": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(analysis.OverallAssessment); ok {
						return a.RiskLevel, nil
					}
					return nil, nil
				},
			},
			"summary": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(analysis.OverallAssessment); ok {
						return a.Summary, nil
					}
					return nil, nil
				},
			},
			"priorityActions": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(analysis.OverallAssessment); ok {
						return a.PriorityActions, nil
					}
					return nil, nil
				},
			},
			"estimatedRecoveryHours": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(analysis.OverallAssessment); ok {
						return a.EstimatedRecoveryHours, nil
					}
					return nil, nil
				},
			},
			"populationAffected": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if a, ok := p.Source.(analysis.OverallAssessment); ok {
						return a.PopulationAffected, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createReportType(affectedType, assessmentType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "ImpactReport",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*analysis.ImpactReport); ok {
						return r.ID, nil
					}
					return nil, nil
				},
			},
			"failedNodeId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*analysis.ImpactReport); ok {
						return r.FailedNodeID, nil
					}
					return nil, nil
				},
			},
			"failureType": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*analysis.ImpactReport); ok {
						return string(r.FailureType), nil
					}
					return nil, nil
				},
			},
			"severity": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*analysis.ImpactReport); ok {
						return string(r.Severity), nil
					}
					return nil, nil
				},
			},
			"affected": &graphql.Field{
				Type: graphql.NewList(affectedType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*analysis.ImpactReport); ok {
						return r.Affected, nil
					}
					return nil, nil
				},
			},
			"assessment": &graphql.Field{
				Type: assessmentType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*analysis.ImpactReport); ok {
						return r.Assessment, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createCandidateType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "WhatIfCandidate",
		Fields: graphql.Fields{
			"nodeId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return c.NodeID, nil
					}
					return nil, nil
				},
			},
			"nodeType": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return string(c.NodeType), nil
					}
					return nil, nil
				},
			},
			"affectedCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return c.AffectedCount, nil
					}
					return nil, nil
				},
			},
			"totalImpact": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return c.TotalImpact, nil
					}
					return nil, nil
				},
			},
			"maxProbability": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return c.MaxProbability, nil
					}
					return nil, nil
				},
			},
			"topologyWeight": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return c.TopologyWeight, nil
					}
					return nil, nil
				},
			},
			"alertLevel": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if c, ok := p.Source.(whatif.CandidateImpact); ok {
						return c.AlertLevel, nil
					}
					return nil, nil
				},
			},
		},
	})
}
