package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/service"
)

func createNodeResolver(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id, _ := p.Args["id"].(string)
		return svc.GetNode(id)
	}
}

func createNodesResolver(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		var filter graph.NodeType
		if raw, ok := p.Args["type"].(string); ok && raw != "" {
			parsed, err := graph.ParseNodeType(raw)
			if err != nil {
				return nil, err
			}
			filter = parsed
		}
		return svc.Nodes(filter)
	}
}

func createStatsResolver(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return svc.Stats()
	}
}

func createPredictResolver(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		ft, err := graph.ParseFailureType(p.Args["failureType"].(string))
		if err != nil {
			return nil, err
		}
		sev, err := graph.ParseSeverity(p.Args["severity"].(string))
		if err != nil {
			return nil, err
		}
		return svc.Predict(p.Context, service.PredictRequest{
			NodeID:      p.Args["nodeId"].(string),
			FailureType: ft,
			Severity:    sev,
		})
	}
}
