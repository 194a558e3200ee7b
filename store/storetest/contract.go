// Package storetest holds the behavioral contract every store.Store backend must satisfy.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/store"
)

// RunContract exercises s. It closes s at the end.
func RunContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.Put(ctx, &store.Record{ID: "x"}), store.ErrInvalidRecord)
	assert.ErrorIs(t, s.Put(ctx, nil), store.ErrInvalidRecord)

	rec := &store.Record{
		ID:          "0190b3b0-0000-7000-8000-000000000001",
		Fingerprint: "00000000deadbeef",
		Name:        "swap",
		Cost:        70,
		Complete:    true,
		Turns: []store.TurnRecord{
			{Class: "A", Path: []string{"B", "H2", "H3"}, Cost: 4},
			{Class: "B", Path: []string{"A", "H1", "H2", "B"}, Cost: 60},
		},
		Nodes:     123,
		Elapsed:   1500 * time.Millisecond,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, rec.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Cost, got.Cost)
	assert.Equal(t, rec.Complete, got.Complete)
	assert.Equal(t, rec.Turns, got.Turns)
	assert.Equal(t, rec.Nodes, got.Nodes)
	assert.Equal(t, rec.Elapsed, got.Elapsed)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	// replace
	better := *rec
	better.ID = "0190b3b0-0000-7000-8000-000000000002"
	better.Cost = 60
	require.NoError(t, s.Put(ctx, &better))
	got, err = s.Get(ctx, rec.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Cost)
	assert.Equal(t, better.ID, got.ID)

	require.NoError(t, s.Close())
}
