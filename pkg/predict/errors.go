package predict

import "errors"

var (
	// ErrNilGraph is returned when Predict is called without a graph.
	ErrNilGraph = errors.New("prediction requires a graph")

	// ErrNilConfig is returned when a network is built without engine
	// constants.
	ErrNilConfig = errors.New("prediction network requires engine config")
)
