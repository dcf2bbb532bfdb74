package analysis

import "errors"

var (
	// ErrNilGraph is returned when Analyze is called without a graph.
	ErrNilGraph = errors.New("analysis requires a graph")

	// ErrNoScores is returned when Analyze receives an empty score slice.
	ErrNoScores = errors.New("analysis requires prediction scores")
)
