// Package httputil provides HTTP utilities for remote resource providers.
//
// # Overview
//
// This package provides the infrastructure used when document resources
// (images, emoji payloads) are fetched from a remote host instead of a
// local directory:
//
//   - [Cache]: File-based caching of fetched payloads
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores fetched payloads in the filesystem (~/.cache/inkpress/)
// with configurable TTL. This speeds up repeated renders of documents
// that reference the same remote images and avoids re-downloading
// unchanged resources.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("image:logo.png", &img)  // Check cache
//	if !ok {
//	    img = fetchFromHost()
//	    cache.Set("image:logo.png", img)          // Store for later
//	}
//
// Cache keys should be namespaced by resource kind to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient
// failures. Wrap the errors that should trigger another attempt in
// [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff to avoid hammering a struggling host:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/inkpress/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `inkpress cache clear` or by deleting
// the cache directory.
package httputil
