package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/gridcast/pkg/graph"
)

var (
	// ErrNotInitialized means no snapshot has been loaded yet.
	ErrNotInitialized = errors.New("no infrastructure snapshot loaded")
	// ErrSnapshotEmpty means the snapshot had no usable entities.
	ErrSnapshotEmpty = errors.New("snapshot contains no entities")
)

// knownIDSample bounds the ids echoed back on unknown-node errors.
const knownIDSample = 5

// unknownNodeError wraps graph.ErrNodeNotFound with a sample of valid ids
// so the operator can spot a typo without a second round trip.
func unknownNodeError(id string, g *graph.InfrastructureGraph) error {
	ids := g.NodeIDs()
	sample := ids
	if len(sample) > knownIDSample {
		sample = sample[:knownIDSample]
	}
	return fmt.Errorf("node %q: %w (known ids include: %s)",
		id, graph.ErrNodeNotFound, strings.Join(sample, ", "))
}
