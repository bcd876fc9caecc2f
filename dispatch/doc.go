// Package dispatch orchestrates one logical API request end to end:
// cache consultation, cancellation registration, authentication
// injection, the transport call, outcome normalization and the
// completion-callback protocol.
//
// Every failure that is not a cancellation reaches callers as *APIError.
// Cancellation propagates as the handle's cancellation cause so callers
// can tell "superseded" apart from "failed"; none of the completion
// callbacks fire for a cancelled call. An unauthorized response triggers
// the session coordinator's one-time teardown.
package dispatch
