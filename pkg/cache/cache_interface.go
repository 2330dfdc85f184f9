package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. Keeping it an interface lets the
// services run against Redis in production and a map-backed fake in tests.
type Cache interface {
	// Get loads the value stored under key and unmarshals it into dest.
	// Returns found=false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "page_detail:*").
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
