package cache

import (
	"testing"
	"time"
)

func TestPolicy_DefaultTTL(t *testing.T) {
	p := Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     10 * time.Minute,
	}

	got := p.EffectiveTTL(0)
	if got != 5*time.Minute {
		t.Errorf("EffectiveTTL(0) = %v, want %v", got, 5*time.Minute)
	}
}

func TestPolicy_OverrideTTL(t *testing.T) {
	p := Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     10 * time.Minute,
	}

	got := p.EffectiveTTL(3 * time.Minute)
	if got != 3*time.Minute {
		t.Errorf("EffectiveTTL(3m) = %v, want %v", got, 3*time.Minute)
	}
}

func TestPolicy_MaxTTLClamping(t *testing.T) {
	p := Policy{
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     10 * time.Minute,
	}

	got := p.EffectiveTTL(15 * time.Minute)
	if got != 10*time.Minute {
		t.Errorf("EffectiveTTL(15m) = %v, want %v (clamped to MaxTTL)", got, 10*time.Minute)
	}
}

func TestPolicy_NegativeOverrideStoresExpired(t *testing.T) {
	p := Policy{
		DefaultTTL: 5 * time.Minute,
	}

	got := p.EffectiveTTL(-1)
	if got != 0 {
		t.Errorf("EffectiveTTL(-1) = %v, want 0 (store already expired)", got)
	}
}

func TestPolicy_NoMaxTTL(t *testing.T) {
	p := Policy{
		DefaultTTL: 5 * time.Minute,
	}

	got := p.EffectiveTTL(24 * time.Hour)
	if got != 24*time.Hour {
		t.Errorf("EffectiveTTL(24h) = %v, want %v (no clamp when MaxTTL is zero)", got, 24*time.Hour)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.DefaultTTL != 5*time.Minute {
		t.Errorf("DefaultTTL = %v, want 5m", p.DefaultTTL)
	}
	if p.MaxTTL != time.Hour {
		t.Errorf("MaxTTL = %v, want 1h", p.MaxTTL)
	}
}
