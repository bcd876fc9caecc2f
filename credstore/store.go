package credstore

import "errors"

// Well-known store keys.
const (
	// KeySession holds the serialized session credentials record.
	KeySession = "session"

	// KeyClient holds the tenant/client identifier. It survives logout so
	// the next login can be routed to the same tenant.
	KeyClient = "client_id"
)

// Sentinel errors for credential storage.
var (
	ErrNilStore = errors.New("credstore: store is nil")
	ErrCorrupt  = errors.New("credstore: session record is corrupt")
)

// Store is an opaque string key-value boundary for credentials.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Get returns (value, true) when the key is present, ("", false) otherwise.
// - Remove is idempotent - no error when the key is absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}
