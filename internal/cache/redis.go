// Package cache provides Redis connection management and caching utilities.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sanaalens/internal/middleware"
)

var rdb *redis.Client

// InitRedis initializes the Redis client from a URL and verifies connectivity.
// A failed ping is logged but not fatal: callers fall back to the database
// and viewed-marker checks fail open.
func InitRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("redis unavailable, caching disabled", "error", err)
	}

	return rdb, nil
}

// GetClient returns the shared Redis client, or nil if InitRedis was never called.
func GetClient() *redis.Client {
	return rdb
}

// Close closes the shared Redis client.
func Close() error {
	if rdb == nil {
		return nil
	}
	return rdb.Close()
}
