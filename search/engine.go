// SPDX-License-Identifier: MIT
// Package: relocate/search
//
// engine.go - depth-first branch and bound over board states.
//
// One bbEngine explores one subtree on one goroutine. Per node:
//  1. sparse deadline check (first node, then every 1024);
//  2. solved board → offer the path to the incumbent;
//  3. for each legal move: clone, open or continue the turn (skip invalid
//     turns), apply and price, bound cut, dominance cut, recurse.
//
// Nothing is global: the incumbent is shared through a pointer and the memo
// is either private or the striped shared table.

package search

import (
	"context"
	"errors"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/movegen"
	"github.com/katalvlaran/relocate/turn"
)

// errStopped unwinds the recursion once the context is done.
var errStopped = errors.New("search: stopped")

const checkEvery = 1024

type bbEngine struct {
	ctx      context.Context
	useBound bool
	best     *incumbent
	memo     memo
	metrics  *Metrics

	// current path and per-depth move buffers
	steps []turn.Step
	bufs  [][]movegen.Move
	sig   []byte

	stats   Stats
	stopped bool
}

func newEngine(ctx context.Context, opts *Options, best *incumbent, m memo) *bbEngine {
	return &bbEngine{
		ctx:      ctx,
		useBound: opts.Bound == SimpleBound,
		best:     best,
		memo:     m,
		metrics:  opts.Metrics,
	}
}

// deadlineCheck performs a rare context test: on the first node, then every checkEvery nodes.
func (e *bbEngine) deadlineCheck() bool {
	if (e.stats.Nodes-1)&(checkEvery-1) != 0 {
		return false
	}
	if e.ctx.Err() != nil {
		e.stopped = true
	}

	return e.stopped
}

func (e *bbEngine) buffer(depth int) []movegen.Move {
	for len(e.bufs) <= depth {
		e.bufs = append(e.bufs, make([]movegen.Move, 0, 16))
	}

	return e.bufs[depth][:0]
}

// expand prices m on a clone of b. It returns the child board and its
// accumulated cost, or ok=false when the move is cut.
func (e *bbEngine) expand(b *board.Board, cost int64, m movegen.Move) (*board.Board, turn.Step, bool, error) {
	tok, _ := b.Outermost(m.Src)
	nb := b.Clone()
	if _, err := turn.Begin(nb, m); err != nil {
		if errors.Is(err, turn.ErrInvalidTurn) {
			e.stats.InvalidTurns++
			return nil, turn.Step{}, false, nil
		}
		return nil, turn.Step{}, false, err
	}
	inc, err := turn.Apply(nb, m)
	if err != nil {
		return nil, turn.Step{}, false, err
	}
	nc := cost + inc

	lb := nc
	if e.useBound {
		lb += remaining(nb)
	}
	if lb >= e.best.load() {
		e.stats.BoundCuts++
		return nil, turn.Step{}, false, nil
	}

	e.sig = nb.AppendSignature(e.sig[:0])
	if !e.memo.visit(e.sig, nc) {
		e.stats.DominanceCuts++
		return nil, turn.Step{}, false, nil
	}

	return nb, turn.Step{Move: m, Class: tok.Class, Cost: inc}, true, nil
}

// dfs explores b, reached at cost, at recursion depth depth.
func (e *bbEngine) dfs(b *board.Board, cost int64, depth int) error {
	e.stats.Nodes++
	if e.deadlineCheck() {
		return errStopped
	}
	if b.IsSolved() {
		if e.best.offer(cost, e.steps) && e.metrics != nil {
			e.metrics.Improvements.Inc()
		}
		return nil
	}

	moves := movegen.Append(e.buffer(depth), b)
	e.bufs[depth] = moves
	for _, m := range moves {
		nb, step, ok, err := e.expand(b, cost, m)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		e.steps = append(e.steps, step)
		err = e.dfs(nb, cost+step.Cost, depth+1)
		e.steps = e.steps[:len(e.steps)-1]
		if err != nil {
			return err
		}
	}

	return nil
}

// flush publishes the counters to the metrics sink.
func (e *bbEngine) flush() {
	if e.metrics == nil {
		return
	}
	e.metrics.Nodes.Add(float64(e.stats.Nodes))
	e.metrics.BoundCuts.Add(float64(e.stats.BoundCuts))
	e.metrics.DominanceCuts.Add(float64(e.stats.DominanceCuts))
}
