package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/dd0wney/gridcast/pkg/config"
	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/logging"
)

// Build turns a capture into a finalized graph: nodes, explicit edges,
// proximity edges, adjacency matrix. An edge whose target is not in the
// capture is skipped with a warning so one bad reference cannot reject a
// whole survey; anything wrong with an entity itself fails the build.
func Build(snap *Snapshot, proximity config.ProximityConfig, logger logging.Logger) (*graph.InfrastructureGraph, error) {
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	logger = logging.OrNop(logger)
	g := graph.New(proximity, logger)

	for i := range snap.Entities {
		ent := &snap.Entities[i]
		props, err := ent.properties()
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", ent.ID, err)
		}
		if _, err := g.AddNode(ent.ID, ent.Type, props, ent.Coordinate()); err != nil {
			return nil, fmt.Errorf("entity %s: %w", ent.ID, err)
		}
	}

	skipped := 0
	for i := range snap.Entities {
		ent := &snap.Entities[i]
		for _, spec := range ent.Edges {
			if _, err := g.GetNode(spec.Target); err != nil {
				skipped++
				logger.Warn("skipping edge with unknown target",
					logging.Component("snapshot"),
					logging.NodeID(ent.ID),
					logging.String("target", spec.Target),
				)
				continue
			}
			et := spec.Type
			if et == "" {
				et = graph.EdgeConnects
			}
			if err := g.AddEdge(ent.ID, spec.Target, spec.Weight, et, spec.Relationship, spec.Bidirectional); err != nil {
				return nil, fmt.Errorf("edge %s->%s: %w", ent.ID, spec.Target, err)
			}
		}
	}

	proximityEdges, err := g.BuildProximityEdges()
	if err != nil {
		return nil, fmt.Errorf("proximity edges: %w", err)
	}
	if _, err := g.BuildAdjacencyMatrix(); err != nil {
		return nil, fmt.Errorf("building adjacency: %w", err)
	}

	logger.Info("snapshot built",
		logging.Component("snapshot"),
		logging.String("version", snap.Version),
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Int("proximity_edges", proximityEdges),
		logging.Int("skipped_edges", skipped),
	)
	return g, nil
}

// properties resolves the raw props JSON against the entity type. Missing
// props produce the type's zero-value defaults.
func (e *Entity) properties() (graph.Properties, error) {
	props, err := graph.NewProperties(e.Type)
	if err != nil {
		return nil, err
	}
	if len(e.Props) == 0 {
		return props, nil
	}
	if err := json.Unmarshal(e.Props, props); err != nil {
		return nil, fmt.Errorf("%w: props: %v", ErrCorruptSnapshot, err)
	}
	return props, nil
}
