package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// interface for Redis client operations.
type CacheClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Close() error
}

// interface for basic cache operations.
type CacheOperations interface {
	Set(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// interface for listing cache operations backed by the key registry.
type ListingOperations interface {
	SetListing(ctx context.Context, key string, value interface{}) error
	ListingKeys(ctx context.Context) ([]string, error)
	InvalidateProductCache(ctx context.Context, productIDs []string) error
}
