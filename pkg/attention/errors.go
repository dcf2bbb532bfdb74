package attention

import "errors"

var (
	// ErrInvalidHeadCount is returned when the output dimension does not
	// divide evenly across attention heads.
	ErrInvalidHeadCount = errors.New("output dimension not divisible by head count")

	// ErrInvalidDimension is returned for non-positive layer dimensions.
	ErrInvalidDimension = errors.New("layer dimensions must be positive")

	// ErrDimensionMismatch is returned when a Forward input does not match
	// the layer's configured dimensions.
	ErrDimensionMismatch = errors.New("input dimension mismatch")
)
