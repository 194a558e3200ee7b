package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/store"
	"github.com/katalvlaran/relocate/store/sqlite"
	"github.com/katalvlaran/relocate/store/storetest"
)

func TestStore_Contract(t *testing.T) {
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	storetest.RunContract(t, s)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.db")
	s, err := sqlite.Open(path)
	require.NoError(t, err)
	rec := &store.Record{ID: "id-1", Fingerprint: "fp-1", Cost: 12521, Complete: true}
	require.NoError(t, s.Put(context.Background(), rec))
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), "fp-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12521), got.Cost)
	assert.Empty(t, got.Turns)
}
