package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCompletionStoreContract runs a suite of tests to verify that a CompletionStore
// implementation adheres to the defined interface contract.
func RunCompletionStoreContract(t *testing.T, store CompletionStore) {
	ctx := context.Background()
	tourID := "contract-" + time.Now().Format("20060102150405.000000000")
	key := domain.CompletionKey(tourID)

	t.Run("Get Missing", func(t *testing.T) {
		_, ok, err := store.Get(ctx, key+"-missing")
		require.NoError(t, err)
		assert.False(t, ok, "missing key must report ok=false")
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, domain.CompletionValue))

		val, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.CompletionValue, val)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "false"))

		val, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "false", val)
	})

	t.Run("Keys", func(t *testing.T) {
		ls, ok := store.(ListableStore)
		if !ok {
			t.Skip("store does not list keys")
		}
		require.NoError(t, store.Set(ctx, key+"-listed", domain.CompletionValue))

		keys, err := ls.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, key+"-listed")
	})
}
