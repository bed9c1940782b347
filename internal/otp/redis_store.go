package otp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:"

// retention past the record expiry so Verify can still report ErrExpired
// instead of ErrNotFound shortly after the window closes.
const redisExpiryGrace = 5 * time.Minute

// RedisStore keeps codes in redis, surviving process restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, key string, rec Record) error {
	value := fmt.Sprintf("%s|%d", rec.Code, rec.ExpiresAt.UnixMilli())
	retain := time.Until(rec.ExpiresAt) + redisExpiryGrace
	if retain <= 0 {
		retain = redisExpiryGrace
	}
	return s.client.Set(ctx, redisKeyPrefix+key, value, retain).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (Record, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	code, rawExpiry, ok := strings.Cut(value, "|")
	if !ok {
		return Record{}, ErrNotFound
	}
	ms, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return Record{}, ErrNotFound
	}
	return Record{Code: code, ExpiresAt: time.UnixMilli(ms).UTC()}, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
