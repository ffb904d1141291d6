package cache

import (
	"context"
	"time"
)

// Store is the generic cache the service layer writes through. Keys are
// scoped by namespace; the pattern form of invalidation takes a glob
// (path.Match syntax for the in-process store, Redis MATCH syntax for the
// Redis store — identical for the "prefix:*" patterns this app uses).
//
// Store failures must never fail a request: callers treat a Get error as
// a miss and log-and-drop Set errors.
type Store interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)

	// Set stores value under the key for ttl.
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key. Deleting an absent key is not an error.
	Delete(ctx context.Context, namespace, key string) error

	// InvalidatePattern removes every key in the namespace matching the
	// glob pattern.
	InvalidatePattern(ctx context.Context, namespace, pattern string) error
}
