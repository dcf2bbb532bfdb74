// Package graphql exposes the prediction service as a GraphQL query
// surface: node lookups, graph stats, impact predictions, and what-if
// rankings.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/service"
	"github.com/dd0wney/gridcast/pkg/whatif"
)

// GenerateSchema builds the query schema over the prediction service
func GenerateSchema(svc *service.Service) (graphql.Schema, error) {
	nodeType := createNodeType()
	statsType := createStatsType()
	affectedType := createAffectedNodeType()
	assessmentType := createAssessmentType()
	reportType := createReportType(affectedType, assessmentType)
	candidateType := createCandidateType()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			// Always include a health check query
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "ok", nil
				},
			},
			"node": &graphql.Field{
				Type: nodeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
				},
				Resolve: createNodeResolver(svc),
			},
			"nodes": &graphql.Field{
				Type: graphql.NewList(nodeType),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
				},
				Resolve: createNodesResolver(svc),
			},
			"stats": &graphql.Field{
				Type:    statsType,
				Resolve: createStatsResolver(svc),
			},
			"predictImpact": &graphql.Field{
				Type: reportType,
				Args: graphql.FieldConfigArgument{
					"nodeId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"failureType": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
					"severity": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: createPredictResolver(svc),
			},
			"whatIf": &graphql.Field{
				Type: graphql.NewList(candidateType),
				Args: graphql.FieldConfigArgument{
					"failureType": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
					"severity": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
					"nodeType": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
					"pessimistic": &graphql.ArgumentConfig{
						Type:         graphql.Boolean,
						DefaultValue: false,
					},
					"limit": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 10,
					},
				},
				Resolve: createWhatIfResolver(svc),
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

// createNodeType creates the GraphQL type for an infrastructure node
func createNodeType() *graphql.Object {
	coordType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "InfrastructureNode",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if node, ok := p.Source.(*graph.Node); ok {
						return node.ID, nil
					}
					return nil, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if node, ok := p.Source.(*graph.Node); ok {
						return string(node.Type), nil
					}
					return nil, nil
				},
			},
			"criticality": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if node, ok := p.Source.(*graph.Node); ok {
						return node.Criticality, nil
					}
					return nil, nil
				},
			},
			"degree": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if node, ok := p.Source.(*graph.Node); ok {
						return node.Degree, nil
					}
					return nil, nil
				},
			},
			"coordinate": &graphql.Field{
				Type: coordType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if node, ok := p.Source.(*graph.Node); ok && node.Coord != nil {
						return map[string]interface{}{"x": node.Coord.X, "y": node.Coord.Y}, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createStatsType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "GraphStats",
		Fields: graphql.Fields{
			"nodes": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if stats, ok := p.Source.(graph.Stats); ok {
						return stats.Nodes, nil
					}
					return nil, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if stats, ok := p.Source.(graph.Stats); ok {
						return stats.Edges, nil
					}
					return nil, nil
				},
			},
			"averageDegree": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if stats, ok := p.Source.(graph.Stats); ok {
						return stats.AverageDegree, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createWhatIfResolver(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		ft, err := graph.ParseFailureType(p.Args["failureType"].(string))
		if err != nil {
			return nil, err
		}
		sev, err := graph.ParseSeverity(p.Args["severity"].(string))
		if err != nil {
			return nil, err
		}

		req := whatif.SweepRequest{
			FailureType: ft,
			Severity:    sev,
			Pessimistic: p.Args["pessimistic"].(bool),
		}
		if nt, ok := p.Args["nodeType"].(string); ok && nt != "" {
			parsed, err := graph.ParseNodeType(nt)
			if err != nil {
				return nil, err
			}
			req.NodeType = parsed
		}

		result, err := svc.WhatIf(p.Context, req)
		if err != nil {
			return nil, err
		}

		candidates := result.Candidates
		if limit, ok := p.Args["limit"].(int); ok && limit > 0 && limit < len(candidates) {
			candidates = candidates[:limit]
		}
		return candidates, nil
	}
}
