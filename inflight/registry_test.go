package inflight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRegistry_RegisterAndRelease(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	h := r.Register(ctx, "list:123")
	if h.ID() != "list:123" {
		t.Errorf("ID() = %q, want %q", h.ID(), "list:123")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if err := h.Context().Err(); err != nil {
		t.Errorf("fresh handle context should be live, got err: %v", err)
	}

	r.Release(h)
	if r.Len() != 0 {
		t.Errorf("Len() after Release = %d, want 0", r.Len())
	}
}

func TestRegistry_RegisterSupersedesPrevious(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	first := r.Register(ctx, "list:123")
	second := r.Register(ctx, "list:123")

	// The first handle settles as cancelled with the supersession cause.
	select {
	case <-first.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("superseded handle should be cancelled")
	}
	if !errors.Is(first.Cause(), ErrSuperseded) {
		t.Errorf("first.Cause() = %v, want ErrSuperseded", first.Cause())
	}

	// The second handle is live and owns the slot.
	if err := second.Context().Err(); err != nil {
		t.Errorf("superseding handle should be live, got err: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (one live handle per identifier)", r.Len())
	}
}

func TestRegistry_Cancel(t *testing.T) {
	r := NewRegistry()
	h := r.Register(context.Background(), "task:7")

	if !r.Cancel("task:7") {
		t.Error("Cancel on live handle should return true")
	}
	if err := h.Context().Err(); err == nil {
		t.Error("cancelled handle context should be done")
	}
	if r.Len() != 0 {
		t.Errorf("Len() after Cancel = %d, want 0", r.Len())
	}

	if r.Cancel("task:7") {
		t.Error("Cancel on absent identifier should return false")
	}
}

func TestRegistry_CancelAll(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	handles := make([]*Handle, 0, 5)
	for i := 0; i < 5; i++ {
		handles = append(handles, r.Register(ctx, fmt.Sprintf("req-%d", i)))
	}

	cancelled := r.CancelAll()
	if cancelled != 5 {
		t.Errorf("CancelAll() = %d, want 5", cancelled)
	}
	if r.Len() != 0 {
		t.Errorf("Len() after CancelAll = %d, want 0", r.Len())
	}
	for i, h := range handles {
		if !errors.Is(h.Cause(), ErrShutdown) {
			t.Errorf("handle %d cause = %v, want ErrShutdown", i, h.Cause())
		}
	}
}

func TestRegistry_ReleaseDoesNotDropSuccessor(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	first := r.Register(ctx, "list:123")
	second := r.Register(ctx, "list:123")

	// The superseded call completes late and releases its handle; the
	// successor's slot must survive.
	r.Release(first)
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (successor slot must survive late release)", r.Len())
	}
	if err := second.Context().Err(); err != nil {
		t.Errorf("successor should still be live, got err: %v", err)
	}
}

func TestRegistry_ReleaseNil(t *testing.T) {
	r := NewRegistry()
	r.Release(nil) // must not panic
}

func TestRegistry_ConcurrentRegisterSameID(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	const goroutines = 32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	handles := make([]*Handle, goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			handles[g] = r.Register(ctx, "shared")
		}(g)
	}
	wg.Wait()

	// Exactly one survivor owns the slot.
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	live := 0
	for _, h := range handles {
		if h.Context().Err() == nil {
			live++
		}
	}
	if live != 1 {
		t.Errorf("live handles = %d, want exactly 1", live)
	}
}

func TestIsCancellation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"superseded", ErrSuperseded, true},
		{"shutdown", ErrShutdown, true},
		{"context canceled", context.Canceled, true},
		{"wrapped superseded", fmt.Errorf("call failed: %w", ErrSuperseded), true},
		{"nil", nil, false},
		{"other error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCancellation(tt.err); got != tt.want {
				t.Errorf("IsCancellation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
