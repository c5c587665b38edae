// Package cache stores rendered board artifacts.
//
// Rendering a snapshot is deterministic, so outputs are keyed by a hash of
// the snapshot and format and can be reused until the board changes. The
// HTTP server keeps a MemoryCache per process; the CLI uses a FileCache under
// the user cache directory for Graphviz renders.
//
// Keys are opaque strings. Use Key to build them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A ttl of zero never expires.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
