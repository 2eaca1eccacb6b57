// Package cache stores rendered artifacts keyed by content hashes of
// their document descriptions.
//
// Rendering is deterministic, so a cache hit is always byte-identical
// to a fresh render; a disabled cache (NullCache) changes latency, not
// output. Backends: files for CLI usage, Redis for the HTTP server,
// null for tests.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime for cached rendered artifacts.
// Rendering is deterministic, so the TTL only bounds storage growth.
const TTLArtifact = 24 * time.Hour

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports a hit; a miss is not an
	// error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores forever; a
	// negative TTL stores an already expired entry, so the next Get
	// misses.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the artifact kinds the renderer
// produces.
type Keyer interface {
	// ArtifactKey keys a rendered artifact by the content hash of its
	// document description and the output options.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string

	// ResourceKey keys a decoded image payload by its resource key.
	ResourceKey(key string) string
}

// ArtifactKeyOpts are the output options that distinguish artifacts
// rendered from the same document.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// ResourceKey generates a key for a decoded image payload.
func (k *DefaultKeyer) ResourceKey(key string) string {
	return "resource:" + Hash([]byte(key))
}
