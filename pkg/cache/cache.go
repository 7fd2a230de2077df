// Package cache stores rendered artifacts keyed by their inputs.
//
// Rendering a diagram to SVG is cheap. Rasterizing it to PNG or PDF, or
// laying it out with Graphviz, is not. The render pipeline keys each
// artifact by a hash of the diagram (or snapshot) plus the render options,
// and consults a [Cache] before doing the work again.
//
// The cache only ever holds derived bytes. Graph state lives in editor
// sessions and is never written here.
//
// # Backends
//
//   - [NullCache]: never stores anything (default)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that distinguish artifacts built
// from the same source.
type ArtifactKeyOpts struct {
	VizType     string  `json:"viz_type"`
	Format      string  `json:"format"`
	Theme       string  `json:"theme,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Inspector   bool    `json:"inspector,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the source
	// with hash sourceHash.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the source hash together with opts.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}
