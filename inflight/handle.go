package inflight

import "context"

// Handle is a one-shot cancellation token for a single in-flight request.
//
// The registry owns the handle until it is cancelled or released; the
// transport call binds to Context so cancelling the handle settles the
// call. Cancelling an already-cancelled handle is a no-op.
type Handle struct {
	id     string
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// ID returns the request identifier this handle was registered under.
func (h *Handle) ID() string {
	return h.id
}

// Context returns the context the in-flight call must be bound to.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// Cause returns the cancellation cause, or nil while the handle is live.
func (h *Handle) Cause() error {
	return context.Cause(h.ctx)
}

func (h *Handle) cancelWith(cause error) {
	h.cancel(cause)
}
