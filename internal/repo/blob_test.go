package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-checklist/internal/repo"
)

// runBlobStoreContract exercises the behaviour every BlobStore backend must
// share. Each backend test file calls it with a fresh store.
func runBlobStoreContract(t *testing.T, newStore func(t *testing.T) repo.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("get absent key", func(t *testing.T) {
		s := newStore(t)

		payload, found, err := s.Get(ctx, "missing")

		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, payload)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "k", []byte(`[1,2,3]`)))
		payload, found, err := s.Get(ctx, "k")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[1,2,3]`, string(payload))
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "k", []byte(`"old"`)))
		require.NoError(t, s.Set(ctx, "k", []byte(`"new"`)))
		payload, _, err := s.Get(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, `"new"`, string(payload))
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "k", []byte(`{}`)))
		require.NoError(t, s.Remove(ctx, "k"))
		_, found, err := s.Get(ctx, "k")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("remove absent key", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Remove(ctx, "never-set"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "a", []byte(`"a"`)))
		require.NoError(t, s.Set(ctx, "b", []byte(`"b"`)))
		require.NoError(t, s.Remove(ctx, "a"))

		payload, found, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `"b"`, string(payload))
	})
}

func TestMemoryStore(t *testing.T) {
	runBlobStoreContract(t, func(t *testing.T) repo.BlobStore {
		return repo.NewMemoryStore()
	})
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := repo.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	payload, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	payload[0] = 'z'

	again, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.NewMemoryStore().Set(ctx, "k", []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
}
