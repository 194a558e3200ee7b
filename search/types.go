// SPDX-License-Identifier: MIT
// Package: relocate/search
//
// types.go - options, results and sentinel errors of the solver.

package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/relocate/turn"
)

// Sentinel errors returned by Solve.
var (
	// ErrNilBoard indicates Solve was called without a board.
	ErrNilBoard = errors.New("search: board is nil")

	// ErrUnsolvable indicates no legal move sequence sorts the board.
	ErrUnsolvable = errors.New("search: no solution")

	// ErrTimeLimit indicates the deadline expired (or ctx was canceled) before
	// any solution was found.
	ErrTimeLimit = errors.New("search: time limit exceeded")

	// ErrNoImprovement indicates the search completed without beating the initial bound.
	ErrNoImprovement = errors.New("search: no solution below the initial bound")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("search: invalid option supplied")
)

// BoundAlgo selects the lower bound added to the accumulated cost before the
// incumbent comparison.
type BoundAlgo uint8

const (
	// NoBound compares the accumulated cost only.
	NoBound BoundAlgo = iota

	// SimpleBound adds an admissible estimate of the remaining cost: per
	// unfinished token, its weight times the hops it provably still needs.
	SimpleBound
)

// String returns a readable algorithm name.
func (a BoundAlgo) String() string {
	switch a {
	case NoBound:
		return "none"
	case SimpleBound:
		return "simple"
	default:
		return "unknown"
	}
}

// ParseBound maps "none" and "simple" to a BoundAlgo.
func ParseBound(s string) (BoundAlgo, error) {
	switch s {
	case "", "none":
		return NoBound, nil
	case "simple":
		return SimpleBound, nil
	default:
		return NoBound, fmt.Errorf("%w: bound %q", ErrOptionViolation, s)
	}
}

// Improvement reports a new incumbent.
type Improvement struct {
	Cost    int64
	Elapsed time.Duration
}

// Options configures Solve. Zero values mean: no deadline, no initial bound,
// NoBound, one worker, private memo, discarded logs, no metrics, path kept.
type Options struct {
	// TimeLimit bounds the wall-clock time of the search; 0 disables it.
	TimeLimit time.Duration

	// InitialBound, if > 0, seeds the incumbent: only strictly cheaper
	// solutions are reported.
	InitialBound int64

	// Bound selects the lower bound policy.
	Bound BoundAlgo

	// Workers > 1 shards the first-level moves over that many goroutines.
	Workers int

	// SharedMemo makes all workers share one dominance table.
	SharedMemo bool

	// Logger receives incumbent updates (Debug) and the final summary (Info).
	Logger *slog.Logger

	// Metrics, if set, receives counters and the solve duration.
	Metrics *Metrics

	// OnImprove is invoked, serialized, for every new incumbent.
	OnImprove func(Improvement)

	// KeepPath controls whether Result.Turns is filled.
	KeepPath bool

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Bound:    NoBound,
		Workers:  1,
		KeepPath: true,
	}
}

func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithTimeLimit bounds the search wall-clock time. Negative values are a violation.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.fail(fmt.Errorf("%w: time limit %v", ErrOptionViolation, d))
			return
		}
		o.TimeLimit = d
	}
}

// WithInitialBound seeds the incumbent cost. Non-positive values are a violation.
func WithInitialBound(c int64) Option {
	return func(o *Options) {
		if c <= 0 {
			o.fail(fmt.Errorf("%w: initial bound %d", ErrOptionViolation, c))
			return
		}
		o.InitialBound = c
	}
}

// WithBound selects the lower bound policy.
func WithBound(a BoundAlgo) Option {
	return func(o *Options) {
		if a != NoBound && a != SimpleBound {
			o.fail(fmt.Errorf("%w: bound %d", ErrOptionViolation, a))
			return
		}
		o.Bound = a
	}
}

// WithWorkers sets the number of search goroutines. Values below 1 are a violation.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.fail(fmt.Errorf("%w: workers %d", ErrOptionViolation, n))
			return
		}
		o.Workers = n
	}
}

// WithSharedMemo toggles the shared dominance table for multi-worker runs.
func WithSharedMemo(on bool) Option {
	return func(o *Options) { o.SharedMemo = on }
}

// WithLogger routes solver logs to l. A nil logger is a violation.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			o.fail(fmt.Errorf("%w: nil logger", ErrOptionViolation))
			return
		}
		o.Logger = l
	}
}

// WithMetrics records solver counters into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithOnImprove registers a callback for new incumbents.
func WithOnImprove(fn func(Improvement)) Option {
	return func(o *Options) { o.OnImprove = fn }
}

// WithPath toggles reconstruction of Result.Turns.
func WithPath(on bool) Option {
	return func(o *Options) { o.KeepPath = on }
}

// Stats are the search counters of one Solve call.
type Stats struct {
	Nodes         uint64
	BoundCuts     uint64
	DominanceCuts uint64
	InvalidTurns  uint64
	Improvements  uint64
	MemoSize      int
	Elapsed       time.Duration
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.BoundCuts += o.BoundCuts
	s.DominanceCuts += o.DominanceCuts
	s.InvalidTurns += o.InvalidTurns
	s.MemoSize += o.MemoSize
}

// Result is the outcome of Solve.
type Result struct {
	// Cost is the total cost of Turns.
	Cost int64

	// Turns is the move sequence grouped by token turn (nil with WithPath(false)).
	Turns []turn.Turn

	// Complete is false when the deadline cut the search short; Cost is then
	// the best found, not necessarily the minimum.
	Complete bool

	Stats Stats
}
