package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
// Implementations: Redis (internal/infrastructure/cache) and Noop.
type Cache interface {
	// Get loads key into dest.
	// found = false on a miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// Incr atomically increments the integer at key and returns the new value.
	// A missing key counts as 0.
	Incr(ctx context.Context, key string) (int64, error)

	// Ping checks the connection
	Ping(ctx context.Context) error
}

// Noop is the cache used when none is configured: every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Incr(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Ping(context.Context) error { return nil }
