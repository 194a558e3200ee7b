package search_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/topology"
	"github.com/katalvlaran/relocate/turn"
)

func TestSolve_Options(t *testing.T) {
	b := swapBoard(t)
	bad := map[string]search.Option{
		"negative time": search.WithTimeLimit(-time.Second),
		"zero bound":    search.WithInitialBound(0),
		"bad algo":      search.WithBound(search.BoundAlgo(9)),
		"zero workers":  search.WithWorkers(0),
		"nil logger":    search.WithLogger(nil),
	}
	for name, opt := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := search.Solve(context.Background(), b, opt)
			assert.ErrorIs(t, err, search.ErrOptionViolation)
		})
	}

	_, err := search.Solve(context.Background(), nil)
	assert.ErrorIs(t, err, search.ErrNilBoard)

	a, err := search.ParseBound("simple")
	require.NoError(t, err)
	assert.Equal(t, search.SimpleBound, a)
	assert.Equal(t, "simple", a.String())
	_, err = search.ParseBound("tight")
	assert.ErrorIs(t, err, search.ErrOptionViolation)
}

func TestSolve_AlreadySolved(t *testing.T) {
	topo, err := topology.Burrow(2)
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, board.Placement{
		"A": {"A", "A"}, "B": {"B", "B"}, "C": {"C", "C"}, "D": {"D", "D"},
	})
	require.NoError(t, err)

	res, err := search.Solve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Cost)
	assert.Empty(t, res.Turns)
	assert.True(t, res.Complete)
}

func TestSolve_Disconnected(t *testing.T) {
	bld := topology.NewBuilder()
	h := bld.AddHallway("H")
	s := bld.AddStack("S", 1)
	island := bld.AddStack("I", 1)
	bld.Connect(h, s)
	bld.AddClass("S", 1, s)
	bld.AddClass("I", 1, island)
	topo, err := bld.Build()
	require.NoError(t, err)

	b, err := board.FromPlacement(topo, board.Placement{"S": {"I"}})
	require.NoError(t, err)

	_, err = search.Solve(context.Background(), b)
	assert.ErrorIs(t, err, search.ErrUnsolvable)
}

func TestSolve_Deadlock(t *testing.T) {
	res, err := search.Solve(context.Background(), deadlockBoard(t))
	assert.ErrorIs(t, err, search.ErrUnsolvable)
	assert.Positive(t, res.Stats.Nodes)
}

func TestSolve_Swap(t *testing.T) {
	for _, algo := range []search.BoundAlgo{search.NoBound, search.SimpleBound} {
		t.Run(algo.String(), func(t *testing.T) {
			b := swapBoard(t)
			before := b.Signature()

			res, err := search.Solve(context.Background(), b, search.WithBound(algo))
			require.NoError(t, err)
			assert.Equal(t, int64(70), res.Cost)
			assert.True(t, res.Complete)
			assert.Equal(t, res.Cost, turn.Cost(res.Turns))
			assert.Equal(t, before, b.Signature(), "input board untouched")

			replayed := b.Clone()
			cost, err := turn.Play(replayed, res.Turns)
			require.NoError(t, err)
			assert.Equal(t, res.Cost, cost)
			assert.True(t, replayed.IsSolved())
		})
	}
}

func TestSolve_SwapDepth2(t *testing.T) {
	for _, workers := range []int{1, 4} {
		b := swapDeepBoard(t)
		res, err := search.Solve(context.Background(), b, search.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, int64(162), res.Cost, "workers=%d", workers)

		cost, err := turn.Replay(b, res.Turns)
		require.NoError(t, err)
		assert.Equal(t, res.Cost, cost)
	}
}

func TestSolve_ForeignStackBlocksPath(t *testing.T) {
	res, err := search.Solve(context.Background(), foreignWallBoard(t))
	require.ErrorIs(t, err, search.ErrUnsolvable)
	assert.ErrorContains(t, err, "A in H0 cannot reach SA")
	assert.Zero(t, res.Stats.Nodes, "rejected before searching")
}

func TestSolve_InitialBound(t *testing.T) {
	_, err := search.Solve(context.Background(), swapBoard(t), search.WithInitialBound(70))
	assert.ErrorIs(t, err, search.ErrNoImprovement)

	res, err := search.Solve(context.Background(), swapBoard(t), search.WithInitialBound(71))
	require.NoError(t, err)
	assert.Equal(t, int64(70), res.Cost)
}

func TestSolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := search.Solve(ctx, burrowExample(t, 4))
	assert.ErrorIs(t, err, search.ErrTimeLimit)

	_, err = search.Solve(ctx, burrowExample(t, 4), search.WithWorkers(4))
	assert.ErrorIs(t, err, search.ErrTimeLimit)
}

func TestSolve_WithoutPath(t *testing.T) {
	res, err := search.Solve(context.Background(), swapBoard(t), search.WithPath(false))
	require.NoError(t, err)
	assert.Equal(t, int64(70), res.Cost)
	assert.Nil(t, res.Turns)
}

func TestSolve_Hooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg := prometheus.NewRegistry()
	m, err := search.NewMetrics(reg)
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		costs []int64
	)
	res, err := search.Solve(context.Background(), swapBoard(t),
		search.WithLogger(logger),
		search.WithMetrics(m),
		search.WithOnImprove(func(imp search.Improvement) {
			mu.Lock()
			costs = append(costs, imp.Cost)
			mu.Unlock()
		}),
	)
	require.NoError(t, err)

	require.NotEmpty(t, costs)
	for i := 1; i < len(costs); i++ {
		assert.Less(t, costs[i], costs[i-1], "incumbents strictly improve")
	}
	assert.Equal(t, res.Cost, costs[len(costs)-1])
	assert.Equal(t, uint64(len(costs)), res.Stats.Improvements)

	assert.Equal(t, float64(len(costs)), testutil.ToFloat64(m.Improvements))
	assert.Equal(t, float64(res.Stats.Nodes), testutil.ToFloat64(m.Nodes))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Solves.WithLabelValues("optimal")))

	assert.Contains(t, buf.String(), "new incumbent")
	assert.Contains(t, buf.String(), "solve finished")

	_, err = search.NewMetrics(reg)
	assert.Error(t, err, "duplicate registration")
}

func TestSolve_Burrow2(t *testing.T) {
	res, err := search.Solve(context.Background(), burrowExample(t, 2), search.WithBound(search.SimpleBound))
	require.NoError(t, err)
	assert.Equal(t, int64(12521), res.Cost)
	assert.True(t, res.Complete)

	cost, err := turn.Replay(burrowExample(t, 2), res.Turns)
	require.NoError(t, err)
	assert.Equal(t, res.Cost, cost)
}

func TestSolve_Burrow2_NoBound(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive search without a lower bound")
	}
	res, err := search.Solve(context.Background(), burrowExample(t, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(12521), res.Cost)
}

// TestSolve_WorkersAgree checks that sharding and memo sharing do not change
// the optimum.
func TestSolve_WorkersAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the burrow example several times")
	}
	cases := []struct {
		name string
		opts []search.Option
	}{
		{"single", nil},
		{"four private", []search.Option{search.WithWorkers(4)}},
		{"four shared", []search.Option{search.WithWorkers(4), search.WithSharedMemo(true)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := append([]search.Option{search.WithBound(search.SimpleBound)}, tc.opts...)
			res, err := search.Solve(context.Background(), burrowExample(t, 2), opts...)
			require.NoError(t, err)
			assert.Equal(t, int64(12521), res.Cost)
			assert.True(t, res.Complete)

			cost, err := turn.Replay(burrowExample(t, 2), res.Turns)
			require.NoError(t, err)
			assert.Equal(t, res.Cost, cost)
		})
	}
}

func TestSolve_SwapSharded(t *testing.T) {
	for _, shared := range []bool{false, true} {
		res, err := search.Solve(context.Background(), swapBoard(t),
			search.WithWorkers(3), search.WithSharedMemo(shared))
		require.NoError(t, err)
		assert.Equal(t, int64(70), res.Cost)
		assert.Positive(t, res.Stats.MemoSize)
	}
}

func TestSolve_Burrow4(t *testing.T) {
	if testing.Short() {
		t.Skip("deep burrow search")
	}
	res, err := search.Solve(context.Background(), burrowExample(t, 4),
		search.WithBound(search.SimpleBound), search.WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, int64(44169), res.Cost)

	cost, err := turn.Replay(burrowExample(t, 4), res.Turns)
	require.NoError(t, err)
	assert.Equal(t, res.Cost, cost)
}

// TestSolve_PartialResult stops the search right after the first incumbent.
func TestSolve_PartialResult(t *testing.T) {
	if testing.Short() {
		t.Skip("deep burrow search")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := burrowExample(t, 4)
	res, err := search.Solve(ctx, b, search.WithOnImprove(func(search.Improvement) { cancel() }))
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.GreaterOrEqual(t, res.Cost, int64(44169))

	cost, err := turn.Replay(b, res.Turns)
	require.NoError(t, err)
	assert.Equal(t, res.Cost, cost)
}
