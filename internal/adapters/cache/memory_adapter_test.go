package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_SetGet(t *testing.T) {
	adapter := NewMemoryAdapter(16)
	defer adapter.Close()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 60))

	got, err := adapter.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	exists, err := adapter.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryAdapter_ExpiredEntryIsGone(t *testing.T) {
	adapter := NewMemoryAdapter(16)
	defer adapter.Close()
	ctx := context.Background()

	// Zero TTL expires immediately.
	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 0))

	_, err := adapter.Get(ctx, "key")
	assert.Error(t, err)

	exists, err := adapter.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryAdapter_CapEvictsSoonestExpiry(t *testing.T) {
	adapter := NewMemoryAdapter(2)
	defer adapter.Close()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "short", []byte("1"), 10))
	require.NoError(t, adapter.Set(ctx, "long", []byte("2"), 600))
	require.NoError(t, adapter.Set(ctx, "new", []byte("3"), 300))

	assert.Equal(t, 2, adapter.Len())

	_, err := adapter.Get(ctx, "short")
	assert.Error(t, err)

	_, err = adapter.Get(ctx, "long")
	assert.NoError(t, err)
	_, err = adapter.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestMemoryAdapter_Delete(t *testing.T) {
	adapter := NewMemoryAdapter(16)
	defer adapter.Close()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 60))
	require.NoError(t, adapter.Delete(ctx, "key"))

	_, err := adapter.Get(ctx, "key")
	assert.Error(t, err)
}
