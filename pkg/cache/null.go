package cache

import (
	"context"
	"time"
)

// NullCache discards everything: every pipeline stage reports a miss,
// so manifests are re-parsed and documents re-rendered on each run.
// Used in tests and behind the --no-cache flag.
type NullCache struct{}

// NewNullCache creates a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
