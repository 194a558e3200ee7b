package search

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/relocate/turn"
)

// incumbent is the best solution so far, shared by all workers. The cost is
// readable without the lock for bound checks; steps are copied under it.
type incumbent struct {
	cost  atomic.Int64
	mu    sync.Mutex
	found bool
	steps []turn.Step
	count uint64

	start     time.Time
	onImprove func(cost int64, steps int)
}

func newIncumbent(initial int64) *incumbent {
	in := &incumbent{start: time.Now()}
	if initial > 0 {
		in.cost.Store(initial)
	} else {
		in.cost.Store(math.MaxInt64)
	}

	return in
}

func (in *incumbent) load() int64 { return in.cost.Load() }

// offer records steps as the new best if cost beats the current one.
func (in *incumbent) offer(cost int64, steps []turn.Step) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if cost >= in.cost.Load() {
		return false
	}
	in.cost.Store(cost)
	in.steps = append(in.steps[:0], steps...)
	in.found = true
	in.count++
	if in.onImprove != nil {
		in.onImprove(cost, len(steps))
	}

	return true
}

func (in *incumbent) snapshot() (cost int64, steps []turn.Step, found bool, count uint64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]turn.Step, len(in.steps))
	copy(out, in.steps)

	return in.cost.Load(), out, in.found, in.count
}
