package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitRepo_Hit(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRateLimitRepo(client)
	key := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, keyPrefix+key) })

	for i := 1; i <= 3; i++ {
		n, err := repo.Hit(ctx, key, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRateLimitRepo_HitRestoresMissingTTL(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewRateLimitRepo(client)
	key := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, keyPrefix+key) })

	// a counter left without expiry
	require.NoError(t, client.Set(ctx, keyPrefix+key, 7, 0).Err())

	n, err := repo.Hit(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
