package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisOccupancyCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := NewRedisClient(addr, "", 0, zap.NewNop())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	cache := NewRedisOccupancyCache(client, time.Minute, zap.NewNop())
	sessionID := "test-" + uuid.NewString()

	_, ok, err := cache.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)

	gen, err := cache.Generation(ctx, sessionID)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, cache.Set(ctx, sessionID, map[string]struct{}{"F1-1": {}, "B2-3": {}}, gen))

	occupied, ok, err := cache.Get(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, occupied, 2)
	assert.Contains(t, occupied, "B2-3")

	require.NoError(t, cache.Set(ctx, sessionID, map[string]struct{}{}, gen))
	occupied, ok, err = cache.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, occupied)

	require.NoError(t, cache.Invalidate(ctx, sessionID))
	_, ok, err = cache.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisOccupancyCache_SetAfterInvalidateIsDropped(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := NewRedisClient(addr, "", 0, zap.NewNop())
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	cache := NewRedisOccupancyCache(client, time.Minute, zap.NewNop())
	sessionID := "test-" + uuid.NewString()

	// Reader snapshots the generation, a commit invalidates, then the
	// reader tries to store what it read before the commit.
	before, err := cache.Generation(ctx, sessionID)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, sessionID))
	require.NoError(t, cache.Set(ctx, sessionID, map[string]struct{}{}, before))

	_, ok, err := cache.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok, "stale occupancy must not be cached")

	after, err := cache.Generation(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	require.NoError(t, cache.Set(ctx, sessionID, map[string]struct{}{"F1-1": {}}, after))
	occupied, ok, err := cache.Get(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, occupied, "F1-1")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	assert.Nil(t, NewRedisClient("", "", 0, zap.NewNop()))
	assert.Nil(t, NewRedisClient("127.0.0.1:1", "", 0, zap.NewNop()))
}
