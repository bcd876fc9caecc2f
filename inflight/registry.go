package inflight

import (
	"context"
	"sync"
)

// Registry maps request identifiers to live cancellation handles.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Ownership: at most one live handle exists per identifier; Register
//     cancels and replaces any previous holder atomically.
//   - Release: dropping a handle without cancelling it is keyed to the
//     handle itself, so a superseded call completing late never drops its
//     successor's slot.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[string]*Handle),
	}
}

// Register creates a handle for id derived from parent. If a handle is
// already live for id it is cancelled with ErrSuperseded and removed
// before the new handle is stored.
func (r *Registry) Register(parent context.Context, id string) *Handle {
	ctx, cancel := context.WithCancelCause(parent)
	h := &Handle{id: id, ctx: ctx, cancel: cancel}

	r.mu.Lock()
	prev := r.handles[id]
	r.handles[id] = h
	r.mu.Unlock()

	if prev != nil {
		prev.cancelWith(ErrSuperseded)
	}
	return h
}

// Cancel cancels the live handle for id, if any. Returns true if a handle
// was cancelled.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	h, ok := r.handles[id]
	delete(r.handles, id)
	r.mu.Unlock()

	if !ok {
		return false
	}
	h.cancelWith(context.Canceled)
	return true
}

// CancelAll cancels every live handle with ErrShutdown and empties the
// registry. Returns the number of handles cancelled.
func (r *Registry) CancelAll() int {
	r.mu.Lock()
	cancelled := make([]*Handle, 0, len(r.handles))
	for id, h := range r.handles {
		cancelled = append(cancelled, h)
		delete(r.handles, id)
	}
	r.mu.Unlock()

	for _, h := range cancelled {
		h.cancelWith(ErrShutdown)
	}
	return len(cancelled)
}

// Release drops h from the registry without cancelling it, used on normal
// completion. If the slot has since been taken by a newer handle the slot
// is left untouched. The handle's context resources are still reclaimed.
func (r *Registry) Release(h *Handle) {
	if h == nil {
		return
	}

	r.mu.Lock()
	if current, ok := r.handles[h.id]; ok && current == h {
		delete(r.handles, h.id)
	}
	r.mu.Unlock()

	// Reclaim the context without signalling a meaningful cause.
	h.cancelWith(context.Canceled)
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
