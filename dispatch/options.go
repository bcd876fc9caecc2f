package dispatch

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/averath/reqops/cache"
	"github.com/averath/reqops/credstore"
	"github.com/averath/reqops/inflight"
	"github.com/averath/reqops/observe"
	"github.com/averath/reqops/session"
)

// Options configures one dispatched call.
type Options struct {
	// RequestID names this call for supersession and cancellation. When
	// empty an identifier of the form verb:url:timestamp is generated.
	RequestID string

	// Cacheable requests caching for a read. Write verbs ignore it.
	Cacheable bool

	// CacheKey overrides the derived key. When empty the key is computed
	// from the URL and the canonicalized Query parameters.
	CacheKey string

	// TTL overrides the cache policy's default for this call. Zero selects
	// the default; negative stores an already-expired entry.
	TTL time.Duration

	// BypassCache skips the cache lookup and the cache write.
	BypassCache bool

	// Headers are pass-through request headers.
	Headers map[string]string

	// Query parameters are appended to the URL and feed the cache key.
	Query map[string]string
}

// Callbacks is the completion protocol threaded through every call.
//
// Contract:
//   - OnSuccess fires exactly once with the result on a non-cancelled
//     success, cache hits included.
//   - OnError fires exactly once with the normalized *APIError on any
//     non-cancelled failure.
//   - OnFinally fires exactly once on every non-cancelled settlement.
//   - None of the three fire on cancellation; the caller observes it only
//     through the returned error.
//
// All callbacks run synchronously within the call's settlement.
type Callbacks struct {
	OnSuccess func(json.RawMessage)
	OnError   func(*APIError)
	OnFinally func()
}

func (c Callbacks) success(data json.RawMessage) {
	if c.OnSuccess != nil {
		c.OnSuccess(data)
	}
}

func (c Callbacks) failure(err *APIError) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

func (c Callbacks) finish() {
	if c.OnFinally != nil {
		c.OnFinally()
	}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each transport call. It overrides the timeout of
// the transport client, supplied or default. A timed-out call settles
// as a transport failure, not a cancellation.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCache enables response caching for cacheable reads.
func WithCache(store cache.Cache) ClientOption {
	return func(c *Client) {
		c.cache = store
	}
}

// WithKeyer sets the cache key derivation strategy.
func WithKeyer(k cache.Keyer) ClientOption {
	return func(c *Client) {
		c.keyer = k
	}
}

// WithCachePolicy sets the TTL policy for cache writes.
func WithCachePolicy(p cache.Policy) ClientOption {
	return func(c *Client) {
		c.policy = p
	}
}

// WithRegistry sets the cancellation registry. Sharing one registry with
// the session coordinator lets teardown abort this client's calls.
func WithRegistry(r *inflight.Registry) ClientOption {
	return func(c *Client) {
		c.registry = r
	}
}

// WithCredentials sets the store consulted for the Authorization header.
func WithCredentials(s credstore.Store) ClientOption {
	return func(c *Client) {
		c.creds = s
	}
}

// WithSession sets the coordinator notified on unauthorized responses.
func WithSession(coord *session.Coordinator) ClientOption {
	return func(c *Client) {
		c.session = coord
	}
}

// WithTracer sets the span source for dispatched requests.
func WithTracer(t observe.Tracer) ClientOption {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithMetrics sets the metrics sink for dispatched requests.
func WithMetrics(m observe.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRequestCoalescing shares one transport call among concurrent
// cacheable reads that resolve to the same cache key.
func WithRequestCoalescing() ClientOption {
	return func(c *Client) {
		c.group = new(singleflight.Group)
	}
}
