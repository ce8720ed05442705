// Package cache provides the artifact cache shared by the CLI and the HTTP
// service.
//
// # Overview
//
// A [Cache] is a byte-oriented key/value store with per-entry TTLs.
// Implementations:
//
//   - [FileCache]: JSON entry files under a directory (CLI default,
//     $XDG_CACHE_HOME/stackbar)
//   - [RedisCache]: a shared Redis instance (STACKBAR_CACHE_URL=redis://...)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys are built by a [Keyer] from content hashes, so a changed input or
// option always produces a new key and entries never need invalidation:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "svg"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLDataset bounds how long records loaded from a remote source (such
	// as a MongoDB collection) are reused.
	TTLDataset = time.Hour

	// TTLLayout is the lifetime of computed chart layouts.
	TTLLayout = 24 * time.Hour

	// TTLArtifact is the lifetime of rendered SVG/PNG/PDF/JSON outputs.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values.
//
// Get reports a miss with ok=false and a nil error. A ttl of zero stores the
// entry without expiration. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
