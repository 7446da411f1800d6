package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-library isolation.
// This is useful when one cache backend serves several photo libraries
// that need separate namespaces.
//
// Example usage:
//
//	// Library-specific keys
//	libKeyer := NewScopedKeyer(NewDefaultKeyer(), "lib:vacation:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(photosHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(photosHash, opts)
}

// ListingKey generates a prefixed key for bucket listing caching.
func (k *ScopedKeyer) ListingKey(endpoint string, opts ListingKeyOpts) string {
	return k.prefix + k.inner.ListingKey(endpoint, opts)
}
