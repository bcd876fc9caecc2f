package credstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials is the session record stored under KeySession.
type Credentials struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	Tenant    string `json:"tenant,omitempty"`
	Role      string `json:"role,omitempty"`
}

// AuthorizationValue returns the Authorization header value for c, in the
// form "{TokenType} {Token}". A record missing either part yields "" so
// the header is omitted rather than sent malformed.
func (c Credentials) AuthorizationValue() string {
	if c.Token == "" || c.TokenType == "" {
		return ""
	}
	return c.TokenType + " " + c.Token
}

// ExpiresAt reports the token's exp claim, when the token is a JWT that
// carries one. The token is parsed without signature verification; this
// is local introspection only, never a trust decision.
func (c Credentials) ExpiresAt() (time.Time, bool) {
	if c.Token == "" {
		return time.Time{}, false
	}
	token, _, err := jwt.NewParser().ParseUnverified(c.Token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsExpired reports whether the token carries an exp claim in the past.
// Opaque tokens never report expired; the server's 401 remains the
// authoritative signal.
func (c Credentials) IsExpired() bool {
	exp, ok := c.ExpiresAt()
	if !ok {
		return false
	}
	return time.Now().After(exp)
}

// Load reads and deserializes the session record. Returns
// (Credentials{}, false, nil) when no session is stored.
func Load(store Store) (Credentials, bool, error) {
	if store == nil {
		return Credentials{}, false, ErrNilStore
	}
	raw, ok := store.Get(KeySession)
	if !ok || raw == "" {
		return Credentials{}, false, nil
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return creds, true, nil
}

// Save serializes creds under KeySession and mirrors the tenant into
// KeyClient so it survives a later logout.
func Save(store Store, creds Credentials) error {
	if store == nil {
		return ErrNilStore
	}
	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("credstore: encode session: %w", err)
	}
	if err := store.Set(KeySession, string(raw)); err != nil {
		return err
	}
	if creds.Tenant != "" {
		return store.Set(KeyClient, creds.Tenant)
	}
	return nil
}

// ClearSession removes the session record only. The client identifier
// under KeyClient is deliberately preserved; login flows derive their
// destination from it.
func ClearSession(store Store) error {
	if store == nil {
		return ErrNilStore
	}
	return store.Remove(KeySession)
}

// ClientID returns the preserved tenant/client identifier, if any.
func ClientID(store Store) (string, bool) {
	if store == nil {
		return "", false
	}
	return store.Get(KeyClient)
}
