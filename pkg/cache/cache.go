// Package cache stores compiled artifacts so that re-rendering an unchanged
// document skips the LaTeX run.
//
// Entries are opaque byte slices addressed by string keys. Keys are built by
// a [Keyer] from the SHA-256 of the exported markup and the options that
// influence the artifact, so any change to the document or the compiler
// yields a new key.
//
// Two implementations exist:
//   - [FileCache] persists entries under a directory (the CLI's --cache)
//   - [NullCache] stores nothing; it is the default
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of the artifact compiled from markup with
	// the given hash.
	ArtifactKey(markupHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists the inputs besides the markup that change a
// compiled artifact.
type ArtifactKeyOpts struct {
	Compiler string `json:"compiler"`
	Format   string `json:"format"`
}

// DefaultKeyer builds unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(markupHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", markupHash, opts)
}
