package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/averath/reqops/cache"
	"github.com/averath/reqops/credstore"
	"github.com/averath/reqops/inflight"
	"github.com/averath/reqops/observe"
	"github.com/averath/reqops/session"
)

// Client dispatches API requests against one base endpoint.
//
// Contract:
//   - Concurrency: safe for concurrent use by any number of call sites.
//   - Errors: every non-cancellation failure returns *APIError; no raw
//     transport error crosses the client boundary.
//   - At most one call is in flight per request identifier; a newer call
//     under the same identifier supersedes the older one.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	policy   cache.Policy
	registry *inflight.Registry
	creds    credstore.Store
	session  *session.Coordinator
	tracer   observe.Tracer
	metrics  observe.Metrics
	logger   *slog.Logger
	group    *singleflight.Group
	timeout  time.Duration
}

// NewClient creates a dispatcher for the given base endpoint.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		keyer:   cache.NewRequestKeyer(),
		policy:  cache.DefaultPolicy(),
		tracer:  observe.NewNoopTracer(),
		metrics: observe.NewNoopMetrics(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = inflight.NewRegistry()
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	return c, nil
}

// Registry returns the cancellation registry, for caller-driven bulk
// cleanup and for wiring the session coordinator's Canceller.
func (c *Client) Registry() *inflight.Registry {
	return c.registry
}

// Get issues a read. Reads are the only verb that consults the cache.
func (c *Client) Get(ctx context.Context, path string, opts Options, cbs Callbacks) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts, cbs)
}

// Post issues a create. A non-nil body is encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any, opts Options, cbs Callbacks) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body, opts, cbs)
}

// Put issues a replace. A non-nil body is encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any, opts Options, cbs Callbacks) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body, opts, cbs)
}

// Delete issues a delete.
func (c *Client) Delete(ctx context.Context, path string, opts Options, cbs Callbacks) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts, cbs)
}

// do runs the per-call pipeline shared by every verb.
func (c *Client) do(ctx context.Context, method, path string, body any, opts Options, cbs Callbacks) (json.RawMessage, error) {
	endpoint := c.endpointURL(path)
	id := opts.RequestID
	if id == "" {
		id = generateRequestID(method, endpoint)
	}
	meta := observe.RequestMeta{Method: method, Endpoint: path, RequestID: id}

	h := c.registry.Register(ctx, id)

	cacheable := method == http.MethodGet && opts.Cacheable && !opts.BypassCache && c.cache != nil
	var key string
	if cacheable {
		key = opts.CacheKey
		if key == "" {
			key = c.keyer.Key(endpoint, opts.Query)
		}
		if cached, ok := c.cache.Get(ctx, key); ok {
			c.registry.Release(h)
			c.metrics.RecordCacheHit(ctx, meta)
			c.logger.Debug("serving from cache", "key", key, "request_id", id)
			cbs.success(cached)
			cbs.finish()
			return cached, nil
		}
		c.metrics.RecordCacheMiss(ctx, meta)
	}

	payload, err := encodeBody(body)
	if err != nil {
		c.registry.Release(h)
		apiErr := normalizeTransportError(err)
		cbs.failure(apiErr)
		cbs.finish()
		return nil, apiErr
	}

	spanCtx, span := c.tracer.StartSpan(h.Context(), meta)
	start := time.Now()
	res, rtErr := c.execute(spanCtx, h, method, endpoint, payload, opts, cacheable, key)
	duration := time.Since(start)

	// A cancelled handle settles as Cancelled no matter what the
	// transport produced: a coalesced waiter may hold a shared success
	// even though it was superseded while waiting. No callbacks fire.
	if cause := h.Cause(); inflight.IsCancellation(cause) {
		c.registry.Release(h)
		c.tracer.EndSpan(span, cause)
		c.metrics.RecordCancellation(ctx, meta)
		return nil, cause
	}

	if rtErr != nil {
		c.registry.Release(h)
		apiErr := normalizeTransportError(rtErr)
		c.tracer.EndSpan(span, apiErr)
		c.metrics.RecordRequest(ctx, meta, duration, 0, apiErr)
		c.logger.Warn("transport failure", "method", method, "url", endpoint, "error", rtErr)
		cbs.failure(apiErr)
		cbs.finish()
		return nil, apiErr
	}

	if res.status < 200 || res.status >= 300 {
		apiErr := normalizeStatusError(res.status, res.body)
		if res.status == http.StatusUnauthorized && c.session != nil {
			// Teardown is fire-and-forget; the triggering caller still
			// receives its normalized error below.
			c.session.Expire()
		}
		c.registry.Release(h)
		c.tracer.EndSpan(span, apiErr)
		c.metrics.RecordRequest(ctx, meta, duration, res.status, apiErr)
		c.logger.Warn("request failed", "method", method, "url", endpoint, "status", res.status)
		cbs.failure(apiErr)
		cbs.finish()
		return nil, apiErr
	}

	data := json.RawMessage(res.body)
	if cacheable {
		ttl := c.policy.EffectiveTTL(opts.TTL)
		if err := c.cache.Set(ctx, key, data, ttl); err != nil {
			c.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	c.registry.Release(h)
	c.tracer.EndSpan(span, nil)
	c.metrics.RecordRequest(ctx, meta, duration, res.status, nil)
	cbs.success(data)
	cbs.finish()
	return data, nil
}

type transportResult struct {
	status int
	body   []byte
}

// execute performs the transport call, coalescing concurrent cacheable
// reads onto one call when coalescing is enabled.
func (c *Client) execute(ctx context.Context, h *inflight.Handle, method, endpoint string, payload []byte, opts Options, cacheable bool, key string) (*transportResult, error) {
	if c.group == nil || !cacheable {
		return c.roundTrip(ctx, method, endpoint, payload, opts)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.roundTrip(ctx, method, endpoint, payload, opts)
	})
	// The shared call may have settled with its issuer's cancellation
	// while this caller is still live; reissue on our own context then.
	if err != nil && inflight.IsCancellation(err) && h.Cause() == nil {
		return c.roundTrip(ctx, method, endpoint, payload, opts)
	}
	if err != nil {
		return nil, err
	}
	return v.(*transportResult), nil
}

// roundTrip issues one HTTP call bound to ctx and drains the response.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload []byte, opts Options) (*transportResult, error) {
	target := endpoint
	if len(opts.Query) > 0 {
		q := url.Values{}
		for name, value := range opts.Query {
			q.Set(name, value)
		}
		target = endpoint + "?" + q.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.injectAuth(req)
	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &transportResult{status: resp.StatusCode, body: data}, nil
}

// injectAuth sets the Authorization header from the stored session
// record. An absent or malformed record omits the header, never errors.
func (c *Client) injectAuth(req *http.Request) {
	if c.creds == nil {
		return
	}
	creds, ok, err := credstore.Load(c.creds)
	if err != nil {
		if errors.Is(err, credstore.ErrCorrupt) {
			c.logger.Warn("ignoring corrupt session record", "error", err)
		}
		return
	}
	if !ok {
		return
	}
	if v := creds.AuthorizationValue(); v != "" {
		req.Header.Set("Authorization", v)
	}
}

// endpointURL resolves path against the base endpoint. Absolute URLs
// pass through untouched.
func (c *Client) endpointURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// generateRequestID builds the fallback identifier verb:url:timestamp.
func generateRequestID(method, endpoint string) string {
	return fmt.Sprintf("%s:%s:%d", method, endpoint, time.Now().UnixNano())
}

// encodeBody serializes a request body. Raw byte payloads pass through.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("dispatch: encode request body: %w", err)
		}
		return data, nil
	}
}
