package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilCache   = errors.New("cache: cache is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Cache is the interface for caching API responses.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Expiry: an entry whose deadline has passed is treated as absent; Get
//     and Has remove such entries as a side effect of observing them.
//   - Errors: Get and Has never error; Get returns (nil, false) on miss.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, false) on miss or expiry.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL. A TTL of zero stores an entry
	// that is already expired, so the next observation reports a miss.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Has reports whether a live entry exists for key.
	Has(ctx context.Context, key string) bool

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// ClearExpired proactively removes expired entries and returns the
	// number removed. Correctness never depends on it being called.
	ClearExpired(ctx context.Context) int
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
