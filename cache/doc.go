// Package cache provides a TTL-bounded store for API responses.
//
// It provides a Cache interface with a memory implementation, deterministic
// key derivation from a URL and its query parameters, and TTL policies with
// per-request overrides.
package cache
