package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Keyer generates deterministic cache keys from a request URL and its
// query parameters.
//
// Contract:
// - Determinism: same URL and parameter set must produce the same key,
//   regardless of parameter insertion order.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from a URL and optional parameters.
	Key(rawURL string, params map[string]string) string
}

// RequestKeyer derives keys as the URL followed by a canonical
// serialization of its parameters.
type RequestKeyer struct{}

// NewRequestKeyer creates a new request keyer.
func NewRequestKeyer() *RequestKeyer {
	return &RequestKeyer{}
}

// Key generates a deterministic cache key.
// Format: <url>?<k1>=<v1>&<k2>=<v2> with parameter names sorted; when no
// parameters are given the URL alone is the key.
func (k *RequestKeyer) Key(rawURL string, params map[string]string) string {
	if len(params) == 0 {
		return rawURL
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(rawURL)
	b.WriteByte('?')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[name]))
	}
	return b.String()
}

// Ensure RequestKeyer implements Keyer
var _ Keyer = (*RequestKeyer)(nil)
