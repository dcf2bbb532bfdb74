package validation

import (
	"errors"
	"fmt"

	"github.com/dd0wney/gridcast/pkg/graph"
	"github.com/dd0wney/gridcast/pkg/snapshot"
)

// Snapshot size limits. The engine targets villages, not regions; a capture
// past these limits is almost certainly a caller bug.
var (
	MaxSnapshotEntities = 1000
	MaxEdgesPerEntity   = 100
)

// ValidateSnapshot validates a capture before the graph build. It checks
// shape only (ids, types, weights); dangling edge targets are left to the
// build, which skips them with a warning.
func ValidateSnapshot(snap *snapshot.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if len(snap.Entities) == 0 {
		return errors.New("snapshot has no entities")
	}
	if len(snap.Entities) > MaxSnapshotEntities {
		return fmt.Errorf("snapshot has %d entities, maximum is %d", len(snap.Entities), MaxSnapshotEntities)
	}

	seen := make(map[string]bool, len(snap.Entities))
	for i := range snap.Entities {
		if err := validateEntity(&snap.Entities[i]); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		if seen[snap.Entities[i].ID] {
			return fmt.Errorf("entity %d: duplicate id '%s'", i, snap.Entities[i].ID)
		}
		seen[snap.Entities[i].ID] = true
	}

	return nil
}

func validateEntity(e *snapshot.Entity) error {
	if err := ValidateNodeID(e.ID); err != nil {
		return err
	}
	if _, err := graph.ParseNodeType(string(e.Type)); err != nil {
		return fmt.Errorf("'%s' is not a known node type", e.Type)
	}
	if len(e.Edges) > MaxEdgesPerEntity {
		return fmt.Errorf("has %d edges, maximum is %d", len(e.Edges), MaxEdgesPerEntity)
	}
	for j, spec := range e.Edges {
		if err := ValidateNodeID(spec.Target); err != nil {
			return fmt.Errorf("edge %d: target: %w", j, err)
		}
		if spec.Weight <= 0 || spec.Weight > 1 {
			return fmt.Errorf("edge %d: weight %v outside (0,1]", j, spec.Weight)
		}
	}
	return nil
}
