package cache

import (
	"context"
	"time"
)

// Store is the contract for the session/token store.
// Allows swapping the backing implementation (Redis, in-memory in tests).
type Store interface {
	// Get reads the value at key and unmarshals it into dest.
	// Returns: (found bool, error)
	// - found = true: key present, data unmarshaled into dest
	// - found = false: key absent, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value at key with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the store
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection
	Ping(ctx context.Context) error
}
