package cache

import "time"

// Policy configures caching behavior.
type Policy struct {
	// DefaultTTL is the TTL to use when none is specified.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default caching policy.
// DefaultTTL: 5 minutes, MaxTTL: 1 hour
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     1 * time.Hour,
	}
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
//
// A zero override selects DefaultTTL; a negative override is preserved as
// zero, meaning the entry is stored already expired. That no-op store is
// observable behavior and deliberately not an error.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl == 0 {
		ttl = p.DefaultTTL
	}
	if ttl < 0 {
		ttl = 0
	}

	// Clamp to MaxTTL if set
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
