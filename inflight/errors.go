package inflight

import (
	"context"
	"errors"
)

// Sentinel cancellation causes.
var (
	// ErrSuperseded is the cancellation cause when a newer request was
	// registered under the same identifier.
	ErrSuperseded = errors.New("inflight: request superseded")

	// ErrShutdown is the cancellation cause when CancelAll tore down
	// every live request.
	ErrShutdown = errors.New("inflight: registry shut down")
)

// IsCancellation reports whether err originates from a handle being
// cancelled, whatever the cause.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, ErrSuperseded) ||
		errors.Is(err, ErrShutdown)
}
