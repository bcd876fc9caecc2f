// Package credstore holds session credentials behind an opaque key-value
// boundary.
//
// The request layer reads credentials to build Authorization headers and
// clears the session record on expiry; the storage mechanism behind the
// Store interface is the caller's concern. Two well-known keys exist: the
// session record and the client identifier, which survives logout.
package credstore
