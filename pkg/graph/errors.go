package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound       = errors.New("node not found")
	ErrDuplicateNode      = errors.New("duplicate node id")
	ErrInvalidNodeID      = errors.New("node id must not be empty")
	ErrSelfEdge           = errors.New("self edge not allowed")
	ErrInvalidEdgeWeight  = errors.New("edge weight must be in (0,1]")
	ErrAdjacencyNotBuilt  = errors.New("adjacency matrix not built")
	ErrEmptyGraph         = errors.New("graph has no nodes")
	ErrFinalized          = errors.New("graph is finalized")
	ErrUnknownNodeType    = errors.New("unknown node type")
	ErrUnknownFailureType = errors.New("unknown failure type")
	ErrUnknownSeverity    = errors.New("unknown severity")
	ErrPropsMismatch      = errors.New("properties do not match node type")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "AddNode", "AddEdge")
	NodeID  string // Primary node involved, if any
	Target  string // Secondary node for edge operations
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.NodeID != "" && e.Target != "":
		return fmt.Sprintf("%s %s->%s: %v", e.Op, e.NodeID, e.Target, e.Cause)
	case e.NodeID != "":
		return fmt.Sprintf("%s node %s: %v", e.Op, e.NodeID, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Node sets the primary node id.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.NodeID = id
	return b
}

// Target sets the secondary node id for edge operations.
func (b *ErrorBuilder) Target(id string) *ErrorBuilder {
	b.err.Target = id
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// NodeNotFoundError creates a not-found error for the given id.
func NodeNotFoundError(op, nodeID string) error {
	return NewError(op).Node(nodeID).Cause(ErrNodeNotFound).Err()
}

// IsNotFound returns true if the error is a node lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
