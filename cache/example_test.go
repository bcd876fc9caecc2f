package cache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/averath/reqops/cache"
)

func ExampleNewMemoryCache() {
	c := cache.NewMemoryCache()
	ctx := context.Background()

	// Store a response body
	_ = c.Set(ctx, "/tasks/7", []byte(`{"id":7}`), 5*time.Minute)

	// Retrieve it
	value, ok := c.Get(ctx, "/tasks/7")
	if ok {
		fmt.Println("Value:", string(value))
	}
	// Output:
	// Value: {"id":7}
}

func ExampleMemoryCache_Set_zeroTTL() {
	c := cache.NewMemoryCache()
	ctx := context.Background()

	// A zero TTL stores an entry that is already expired
	err := c.Set(ctx, "/tasks", []byte(`[]`), 0)
	fmt.Println("Set error:", err)

	// The next observation reports a miss and removes the entry
	_, ok := c.Get(ctx, "/tasks")
	fmt.Println("Found:", ok)
	// Output:
	// Set error: <nil>
	// Found: false
}

func ExampleRequestKeyer_Key() {
	keyer := cache.NewRequestKeyer()

	// Parameter order never affects the key
	key1 := keyer.Key("/tasks", map[string]string{"page": "2", "limit": "10"})
	key2 := keyer.Key("/tasks", map[string]string{"limit": "10", "page": "2"})

	fmt.Println("Key:", key1)
	fmt.Println("Keys match:", key1 == key2)

	// Without parameters the URL alone is the key
	fmt.Println("Bare:", keyer.Key("/tasks", nil))
	// Output:
	// Key: /tasks?limit=10&page=2
	// Keys match: true
	// Bare: /tasks
}

func ExamplePolicy_EffectiveTTL() {
	policy := cache.Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     1 * time.Hour,
	}

	// No override - uses default
	fmt.Println("No override:", policy.EffectiveTTL(0))

	// Excessive override - clamped to max
	fmt.Println("2hr override (clamped):", policy.EffectiveTTL(2*time.Hour))

	// Negative override - stored already expired
	fmt.Println("Negative override:", policy.EffectiveTTL(-1))
	// Output:
	// No override: 5m0s
	// 2hr override (clamped): 1h0m0s
	// Negative override: 0s
}
