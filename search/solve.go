// SPDX-License-Identifier: MIT
// Package: relocate/search
//
// solve.go - public entrypoint: option parsing, prechecks, sharding, result.

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/movegen"
	"github.com/katalvlaran/relocate/topology"
	"github.com/katalvlaran/relocate/turn"
)

// Solve returns the minimum total cost of sorting b, with the move sequence
// grouped into turns. b is not modified.
//
// Errors:
//   - ErrNilBoard, ErrOptionViolation for bad input;
//   - ErrUnsolvable when the search space holds no solution (including a
//     token whose destination is unreachable);
//   - ErrNoImprovement when nothing beats WithInitialBound;
//   - ErrTimeLimit when the deadline expired before any solution.
//
// When the deadline expires after a solution was found, the best one is
// returned with Complete=false and a nil error.
func Solve(ctx context.Context, b *board.Board, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if b == nil {
		return Result{}, ErrNilBoard
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := o.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	start := time.Now()
	res, err := solve(ctx, b, &o, log)
	res.Stats.Elapsed = time.Since(start)

	if o.Metrics != nil {
		o.Metrics.Duration.Observe(res.Stats.Elapsed.Seconds())
		o.Metrics.Solves.WithLabelValues(outcome(err, res.Complete)).Inc()
	}
	if err != nil {
		log.Info("solve finished", "err", err, "nodes", res.Stats.Nodes, "elapsed", res.Stats.Elapsed)
		return res, err
	}
	log.Info("solve finished",
		"cost", res.Cost,
		"turns", len(res.Turns),
		"complete", res.Complete,
		"nodes", res.Stats.Nodes,
		"memo", res.Stats.MemoSize,
		"elapsed", res.Stats.Elapsed,
	)

	return res, nil
}

func solve(ctx context.Context, b *board.Board, o *Options, log *slog.Logger) (Result, error) {
	if b.IsSolved() {
		return Result{Complete: true}, nil
	}
	if err := reachable(ctx, b); err != nil {
		return Result{}, err
	}
	if o.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.TimeLimit)
		defer cancel()
	}

	best := newIncumbent(o.InitialBound)
	best.onImprove = func(cost int64, steps int) {
		elapsed := time.Since(best.start)
		log.Debug("new incumbent", "cost", cost, "steps", steps, "elapsed", elapsed)
		if o.OnImprove != nil {
			o.OnImprove(Improvement{Cost: cost, Elapsed: elapsed})
		}
	}

	root := b.Clone()
	var (
		stats   Stats
		stopped bool
		err     error
	)
	if o.Workers <= 1 {
		stats, stopped, err = runSingle(ctx, root, o, best)
	} else {
		stats, stopped, err = runSharded(ctx, root, o, best)
	}
	if err != nil {
		return Result{Stats: stats}, err
	}

	cost, steps, found, count := best.snapshot()
	stats.Improvements = count
	switch {
	case !found && stopped:
		return Result{Stats: stats}, fmt.Errorf("%w after %d nodes", ErrTimeLimit, stats.Nodes)
	case !found && o.InitialBound > 0:
		return Result{Stats: stats}, fmt.Errorf("%w: %d", ErrNoImprovement, o.InitialBound)
	case !found:
		return Result{Stats: stats}, ErrUnsolvable
	}

	res := Result{Cost: cost, Complete: !stopped, Stats: stats}
	if o.KeepPath {
		res.Turns = turn.Compose(steps)
	}

	return res, nil
}

func runSingle(ctx context.Context, root *board.Board, o *Options, best *incumbent) (Stats, bool, error) {
	m := localMemo{}
	seed(m, root)
	e := newEngine(ctx, o, best, m)
	err := e.dfs(root, 0, 0)
	e.flush()
	e.stats.MemoSize = m.size()
	if errors.Is(err, errStopped) {
		return e.stats, true, nil
	}

	return e.stats, e.stopped, err
}

// runSharded expands the root once and hands every first-level child to a
// worker of an errgroup limited to o.Workers goroutines.
func runSharded(ctx context.Context, root *board.Board, o *Options, best *incumbent) (Stats, bool, error) {
	var shared *sharedMemo
	if o.SharedMemo {
		shared = newSharedMemo()
		seed(shared, root)
	}
	newMemo := func() memo {
		if shared != nil {
			return shared
		}
		m := localMemo{}
		seed(m, root)

		return m
	}

	// Root expansion runs on a throwaway engine so its cuts are counted.
	rootEngine := newEngine(ctx, o, best, newMemo())
	rootEngine.stats.Nodes++
	type child struct {
		b    *board.Board
		step turn.Step
	}
	var children []child
	for _, m := range movegen.Generate(root) {
		nb, step, ok, err := rootEngine.expand(root, 0, m)
		if err != nil {
			return rootEngine.stats, false, err
		}
		if ok {
			children = append(children, child{nb, step})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	engines := make([]*bbEngine, len(children))
	for i, c := range children {
		e := newEngine(gctx, o, best, newMemo())
		e.steps = append(e.steps, c.step)
		engines[i] = e
		g.Go(func() error {
			err := e.dfs(c.b, c.step.Cost, 1)
			e.flush()
			if errors.Is(err, errStopped) {
				return nil
			}

			return err
		})
	}
	err := g.Wait()

	total := rootEngine.stats
	stopped := false
	for _, e := range engines {
		if shared == nil {
			e.stats.MemoSize = e.memo.size()
		}
		total.add(e.stats)
		stopped = stopped || e.stopped
	}
	if shared != nil {
		total.MemoSize = shared.size()
	}

	return total, stopped, err
}

// seed records the initial state at cost zero so no branch returns to it.
func seed(m memo, b *board.Board) {
	m.visit(b.AppendSignature(nil), 0)
}

// reachable fails with ErrUnsolvable when some token can never reach its
// destination, walking only through slots its class may enter.
func reachable(ctx context.Context, b *board.Board) error {
	t := b.Topology()
	for id := topology.SlotID(0); int(id) < t.Len(); id++ {
		var checked uint32 // classes already walked from id
		for _, tok := range b.Tokens(id) {
			if checked&(1<<tok.Class) != 0 {
				continue
			}
			checked |= 1 << tok.Class
			dest := t.Destination(tok.Class)
			seen, err := t.Connected(ctx, tok.Class, id)
			if err != nil {
				if ctx.Err() != nil {
					return fmt.Errorf("%w: %w", ErrTimeLimit, err)
				}
				return err
			}
			if !seen[dest] {
				return fmt.Errorf("%w: %s in %s cannot reach %s",
					ErrUnsolvable, t.ClassName(tok.Class), t.Name(id), t.Name(dest))
			}
		}
	}

	return nil
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, ErrUnsolvable):
		return "unsolvable"
	case errors.Is(err, ErrTimeLimit):
		return "timeout"
	case errors.Is(err, ErrNoImprovement):
		return "no_improvement"
	default:
		return "error"
	}
}
