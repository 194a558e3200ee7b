// Package bfs provides breadth-first search over an integer-indexed Graph,
// returning unweighted hop distances, parent links, and visit order.
package bfs

import (
	"context"
	"fmt"
)

// queueItem pairs a vertex with its BFS depth.
type queueItem struct {
	id    int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph Graph
	opts  BFSOptions
	ctx   context.Context
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any user-supplied hook error.
func BFS(g Graph, start int, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := g.Len()
	if start < 0 || start >= n {
		return nil, ErrStartVertexNotFound
	}

	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &BFSResult{
			Order: make([]int, 0, n),
			Depth: make([]int, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = -1
	}

	w.enqueue(start, 0)

	return w.res, w.loop()
}

// enqueue marks id reached at depth d.
func (w *walker) enqueue(id, d int) {
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
		}

		next := item.depth + 1
		for _, nbr := range w.graph.Neighbors(item.id) {
			if w.res.Depth[nbr] >= 0 || !w.opts.FilterNeighbor(item.id, nbr) {
				continue
			}
			w.enqueue(nbr, next)
		}
	}

	return nil
}
