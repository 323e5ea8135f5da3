package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sanaalens/internal/middleware"
	"sanaalens/internal/observability"
)

// GetJSON fetches a key and unmarshals it into dest. Returns false on a
// cache miss or any Redis error.
func GetJSON(ctx context.Context, rdb *redis.Client, key string, dest any) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.RedisErrorRate.WithLabelValues("get").Inc()
			middleware.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		middleware.Logger.WarnContext(ctx, "cache entry corrupt, dropping", "key", key, "error", err)
		rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Errors are logged, never returned: caching is best-effort.
func SetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}
	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("set").Inc()
		middleware.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// Aside implements the cache-aside pattern: return the cached value under
// key if present, otherwise load from the source of truth, cache the
// result and return it.
func Aside[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if GetJSON(ctx, rdb, key, &cached) {
		return cached, nil
	}

	fresh, err := load()
	if err != nil {
		return fresh, err
	}

	SetJSON(ctx, rdb, key, fresh, ttl)
	return fresh, nil
}

// Invalidate deletes the given keys, logging failures instead of
// surfacing them.
func Invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		observability.RedisErrorRate.WithLabelValues("del").Inc()
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}
