package whatif

import "errors"

var (
	// ErrNilRunner is returned when an engine is built without a scenario
	// runner.
	ErrNilRunner = errors.New("sweep engine requires a scenario runner")

	// ErrNilGraph is returned when an engine is built without a graph.
	ErrNilGraph = errors.New("sweep engine requires a graph")

	// ErrNotFinalized is returned when the graph's adjacency structures
	// have not been built yet.
	ErrNotFinalized = errors.New("sweep engine requires a finalized graph")

	// ErrNoCandidates is returned when a sweep request matches no nodes.
	ErrNoCandidates = errors.New("no candidate nodes match the request")

	// ErrPoolClosed is returned when a sweep is started after Close.
	ErrPoolClosed = errors.New("sweep worker pool is closed")
)
