// Package cache provides pluggable byte caches for built graphs and
// rendered artifacts.
//
// Building a graph is cheap, but rasterizing large graphs through Graphviz
// is not, and API deployments rebuild identical graphs for every request.
// The pipeline therefore caches by content: keys are derived from the
// sha256 of the raw declaration bytes plus the options that shaped the
// result, so a cache entry can never go stale silently.
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache] for
// server deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKeyOpts captures the inputs that change a built (and possibly
// filtered) graph beyond the declaration bytes themselves.
type GraphKeyOpts struct {
	Direction string
	Entries   []string
}

// GraphKey derives the cache key for a built graph from the hash of the
// raw declaration input and the filter options applied to it.
func GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts.Direction, opts.Entries)
}

// ArtifactKey derives the cache key for a rendered artifact from the hash
// of the graph JSON it was rendered from and the output format.
func ArtifactKey(graphHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, graphHash)
}
