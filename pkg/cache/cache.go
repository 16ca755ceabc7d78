// Package cache memoises pipeline results.
//
// The tree pipeline is pure, so a scene is fully determined by the tree's
// content hash and the layout options, and an artifact by the scene hash and
// the output options. [Keyer] turns those inputs into cache keys; [Cache]
// stores opaque bytes under them.
//
// Three backends are provided:
//
//   - [FileCache]: one file per entry under a local directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: stores nothing; used when caching is disabled
//
// All backends treat a corrupt or expired entry as a miss.
package cache

import (
	"context"
	"time"
)

// Default TTLs by entry type.
const (
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores byte values with an optional TTL. A TTL of zero means the
// entry does not expire. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SceneKeyOpts are the inputs besides the tree that determine a scene.
type SceneKeyOpts struct {
	Width  float64 `json:"width"`
	Engine string  `json:"engine"`
	Layout string  `json:"layout"` // hash of the layout engine parameters
}

// ArtifactKeyOpts are the inputs besides the scene that determine an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Engine string  `json:"engine"`
	Theme  string  `json:"theme"` // hash of the resolved theme
	Legend bool    `json:"legend"`
	Scale  float64 `json:"scale"`
}

// Keyer derives cache keys.
type Keyer interface {
	SceneKey(treeHash string, opts SceneKeyOpts) string
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns "scene:<sha256>".
func (DefaultKeyer) SceneKey(treeHash string, opts SceneKeyOpts) string {
	return hashKey("scene", treeHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
