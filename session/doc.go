// Package session coordinates the one-time reaction to session expiry.
//
// Arbitrarily many concurrent requests can observe an unauthorized
// response at once; the Coordinator serializes them onto a single
// teardown: clear the stored session record (preserving the client
// identifier), cancel every in-flight request, notify the user, and
// schedule a redirect to the login destination. The expired state is
// reset only by an explicit login-success signal.
package session
