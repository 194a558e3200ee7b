// Package bfs provides tunable options and error definitions
// for breadth-first search over an integer-indexed Graph.
package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start index is out of range.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Graph is the read-only view BFS walks. Vertices are the integers [0, Len()).
// Neighbors must return indices in a stable order for the walk to be reproducible.
type Graph interface {
	Len() int
	Neighbors(id int) []int
}

// Adjacency is a plain adjacency-list Graph, handy for fixtures and small callers.
type Adjacency [][]int

// Len returns the number of vertices.
func (a Adjacency) Len() int { return len(a) }

// Neighbors returns the adjacency row of id.
func (a Adjacency) Neighbors(id int) []int { return a[id] }

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. a nil context), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks to customize BFS execution.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a vertex. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id int, depth int) error

	// FilterNeighbor can skip edges by returning false.
	// Called for each edge curr→neighbor.
	FilterNeighbor func(curr, neighbor int) bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a BFSOptions with background context, no
// filtering and a no-op visit hook.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:            context.Background(),
		OnVisit:        func(int, int) error { return nil },
		FilterNeighbor: func(_, _ int) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(id int, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor int) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// BFSResult holds the outcome of a BFS traversal.
// Depth is indexed by vertex; -1 marks unreached vertices.
type BFSResult struct {
	Order []int
	Depth []int
}

// Reached reports whether id was visited.
func (r *BFSResult) Reached(id int) bool {
	return id >= 0 && id < len(r.Depth) && r.Depth[id] >= 0
}
