package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:"), mr
}

func TestStores_RoundTrip(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var got record
			ok, err := store.Get(ctx, "missing", &got)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "group:abc", record{Name: "abc", Count: 3}, time.Hour))
			ok, err = store.Get(ctx, "group:abc", &got)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, record{Name: "abc", Count: 3}, got)

			ttl, err := store.TTL(ctx, "group:abc")
			require.NoError(t, err)
			assert.Greater(t, ttl, 59*time.Minute)

			require.NoError(t, store.Delete(ctx, "group:abc"))
			assert.ErrorIs(t, MustGet(ctx, store, "group:abc", &got), ErrNotFound)
		})
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 10, 16, 19, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "verify:+15555550100", "hash", 10*time.Minute))
	now = now.Add(9 * time.Minute)
	var v string
	ok, err := store.Get(ctx, "verify:+15555550100", &v)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, err = store.Get(ctx, "verify:+15555550100", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", 1, time.Minute))
	assert.True(t, mr.Exists("test:k"))

	mr.FastForward(2 * time.Minute)
	var v int
	ok, err := store.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}
