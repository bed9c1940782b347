package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	expires := time.Now().UTC().Add(5 * time.Minute).Truncate(time.Millisecond)
	require.NoError(t, store.Save(ctx, "+919999999999", Record{Code: "654321", ExpiresAt: expires}))

	rec, err := store.Get(ctx, "+919999999999")
	require.NoError(t, err)
	assert.Equal(t, "654321", rec.Code)
	assert.True(t, rec.ExpiresAt.Equal(expires))
}

func TestRedisStoreOverwrite(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	expires := time.Now().UTC().Add(5 * time.Minute)

	require.NoError(t, store.Save(ctx, "key", Record{Code: "111111", ExpiresAt: expires}))
	require.NoError(t, store.Save(ctx, "key", Record{Code: "222222", ExpiresAt: expires}))

	rec, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "222222", rec.Code)
}

func TestRedisStoreDelete(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "key", Record{Code: "111111", ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreMissingKey(t *testing.T) {
	store := newTestRedisStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
