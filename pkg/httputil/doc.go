// Package httputil provides HTTP utilities for the bucket listing
// client.
//
// # Overview
//
// This package provides infrastructure shared by HTTP-facing code:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/photogrid/)
// with configurable TTL. Bucket listings require one request per page
// plus one HEAD per object, so caching dramatically speeds up repeated
// layout runs.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, _ := cache.Get("listing:photos", &listing)  // Check cache
//	if !ok {
//	    listing = fetchFromBucket()
//	    cache.Set("listing:photos", listing)        // Store for later
//	}
//
// Cache keys should be namespaced by endpoint to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient
// failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff between attempts:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchPage()
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/photogrid/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `photogrid cache clear` or by deleting
// the cache directory.
package httputil
