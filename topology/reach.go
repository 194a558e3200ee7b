// SPDX-License-Identifier: MIT
// Package: relocate/topology
//
// reach.go - reachability over the slot graph, delegated to package bfs.

package topology

import (
	"context"
	"errors"

	"github.com/katalvlaran/relocate/bfs"
)

// errFound stops a walk once the target is visited.
var errFound = errors.New("topology: target found")

// graphView adapts a Topology to bfs.Graph.
type graphView struct{ t *Topology }

func (g graphView) Len() int { return g.t.Len() }

func (g graphView) Neighbors(id int) []int {
	row := g.t.adj[id]
	out := make([]int, len(row))
	for i, n := range row {
		out[i] = int(n)
	}

	return out
}

// enterable keeps the walk of a class-c token to slots it may enter:
// hallways and its own destination, never a foreign stack.
func (t *Topology) enterable(c Class) bfs.Option {
	return bfs.WithFilterNeighbor(func(_, n int) bool { return t.CanEnter(c, SlotID(n)) })
}

// Connected returns, for every slot, whether a token of class c standing
// at `from` could ever get there. Occupancy is ignored; the start slot is
// always reached even when c may not enter it.
func (t *Topology) Connected(ctx context.Context, c Class, from SlotID) ([]bool, error) {
	if !t.ValidClass(c) {
		return nil, ErrUnknownClass
	}
	res, err := bfs.BFS(graphView{t}, int(from), bfs.WithContext(ctx), t.enterable(c))
	if err != nil {
		return nil, err
	}
	out := make([]bool, t.Len())
	for i := range out {
		out[i] = res.Reached(i)
	}

	return out, nil
}

// Reachable reports whether a token of class c can travel from `from` to `to`.
// The walk stops as soon as `to` is visited.
func (t *Topology) Reachable(c Class, from, to SlotID) bool {
	if !t.Valid(to) || !t.ValidClass(c) {
		return false
	}
	_, err := bfs.BFS(graphView{t}, int(from), t.enterable(c),
		bfs.WithOnVisit(func(id, _ int) error {
			if id == int(to) {
				return errFound
			}
			return nil
		}))

	return errors.Is(err, errFound)
}
