// Package inflight tracks cancellation handles for in-flight API requests.
//
// Each logical request is named by an identifier. Registering a new request
// under an identifier that is already live cancels the previous request
// first, so at most one call per identifier is ever in flight. Cancellation
// is delivered through the handle's context; callers distinguish
// supersession from shutdown via context.Cause.
package inflight
