// Package cache provides caching for computed layouts and bucket
// listings.
//
// The package defines a generic byte-oriented [Cache] interface with
// file, Redis, and null backends, plus a [Keyer] that derives stable
// cache keys from layout inputs. Layout keys hash the photo set
// together with every option that influences packing, so any input
// change produces a different key and stale layouts are never served.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented cache with optional TTL expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Cache TTLs per artifact class. Listings change whenever the bucket
// does, so they expire daily; layouts are pure functions of their
// inputs and can live longer.
const (
	TTLListing = 24 * time.Hour
	TTLLayout  = 7 * 24 * time.Hour
)

// LayoutKeyOpts are the layout parameters that participate in the
// layout cache key. Two layouts share a key only if every field
// matches.
type LayoutKeyOpts struct {
	Breakpoints []int
	ShortEdge   int
	Rounding    string
	Grow        bool
}

// ListingKeyOpts identify a bucket listing for caching.
type ListingKeyOpts struct {
	Bucket string
	Prefix string
}

// Keyer generates cache keys for the different cacheable artifacts.
type Keyer interface {
	// LayoutKey generates a key for a computed responsive layout.
	// photosHash is a content hash of the photo set being laid out.
	LayoutKey(photosHash string, opts LayoutKeyOpts) string

	// ListingKey generates a key for a bucket listing.
	ListingKey(endpoint string, opts ListingKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed responsive layout.
// The options are hashed into the key so any parameter change misses.
func (k *DefaultKeyer) LayoutKey(photosHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:"+photosHash, opts)
}

// ListingKey generates a key for a bucket listing.
func (k *DefaultKeyer) ListingKey(endpoint string, opts ListingKeyOpts) string {
	return fmt.Sprintf("listing:%s:%s/%s", endpoint, opts.Bucket, opts.Prefix)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
