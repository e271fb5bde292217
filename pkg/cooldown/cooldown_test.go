package cooldown

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(5 * time.Second)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "p1")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "p1")
	assert.False(t, ok)
	ok, _ = l.Allow(ctx, "p2")
	assert.True(t, ok)

	now = now.Add(4 * time.Second)
	ok, _ = l.Allow(ctx, "p1")
	assert.False(t, ok)

	now = now.Add(time.Second)
	ok, _ = l.Allow(ctx, "p1")
	assert.True(t, ok)
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 5*time.Second)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "tenant:p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "tenant:p1")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(5 * time.Second)

	ok, err = l.Allow(ctx, "tenant:p1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_Error(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, err := NewRedisLimiter(client, time.Second).Allow(context.Background(), "k")
	assert.Error(t, err)
}
