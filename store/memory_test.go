package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/store"
	"github.com/katalvlaran/relocate/store/storetest"
	"github.com/katalvlaran/relocate/topology"
	"github.com/katalvlaran/relocate/turn"
)

func TestMemory_Contract(t *testing.T) {
	storetest.RunContract(t, store.NewMemory())
}

func TestMemory_Closed(t *testing.T) {
	m := store.NewMemory()
	require.NoError(t, m.Close())
	_, err := m.Get(context.Background(), "x")
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, m.Put(context.Background(), &store.Record{ID: "i", Fingerprint: "f"}), store.ErrClosed)
}

func TestMemory_NoAliasing(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	in := &store.Record{
		ID: "i", Fingerprint: "f", Cost: 3,
		Turns: []store.TurnRecord{{Class: "A", Path: []string{"H0", "A"}, Cost: 3}},
	}
	require.NoError(t, m.Put(ctx, in))
	in.Turns[0].Path[0] = "changed after put"

	out, err := m.Get(ctx, "f")
	require.NoError(t, err)
	out.Turns[0].Class = "changed after get"
	out.Turns[0].Path[1] = "changed after get"
	out.Turns = append(out.Turns, store.TurnRecord{Class: "B"})

	again, err := m.Get(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, []store.TurnRecord{{Class: "A", Path: []string{"H0", "A"}, Cost: 3}}, again.Turns)
}

func TestNewRecord_RoundTrip(t *testing.T) {
	topo, err := topology.Line(4, 1, []int{1, 2}, []int64{1, 10})
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, board.Placement{"A": {"B"}, "B": {"A"}})
	require.NoError(t, err)

	res, err := search.Solve(context.Background(), b)
	require.NoError(t, err)

	rec, err := store.NewRecord("fp", "swap", topo, res)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, int64(70), rec.Cost)
	require.NotEmpty(t, rec.Turns)

	turns, err := rec.Resolve(topo)
	require.NoError(t, err)
	assert.Equal(t, res.Turns, turns)

	cost, err := turn.Replay(b, turns)
	require.NoError(t, err)
	assert.Equal(t, rec.Cost, cost)

	rec.Turns[0].Path[0] = "nowhere"
	_, err = rec.Resolve(topo)
	assert.ErrorIs(t, err, topology.ErrUnknownSlot)
}
