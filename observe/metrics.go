package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records request-layer metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRequest records one dispatched request with duration, HTTP
	// status (0 when no response was received) and error outcome.
	RecordRequest(ctx context.Context, meta RequestMeta, duration time.Duration, status int, err error)

	// RecordCacheHit records a response served from the cache.
	RecordCacheHit(ctx context.Context, meta RequestMeta)

	// RecordCacheMiss records a cacheable request that went to transport.
	RecordCacheMiss(ctx context.Context, meta RequestMeta)

	// RecordCancellation records a request settled as cancelled.
	RecordCancellation(ctx context.Context, meta RequestMeta)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	totalCount    metric.Int64Counter
	errorCount    metric.Int64Counter
	durationHist  metric.Float64Histogram
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
	cancellations metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"api.client.requests",
		metric.WithDescription("Total number of dispatched API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"api.client.errors",
		metric.WithDescription("Total number of failed API requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"api.client.duration_ms",
		metric.WithDescription("API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"api.client.cache.hits",
		metric.WithDescription("Responses served from the cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"api.client.cache.misses",
		metric.WithDescription("Cacheable requests that reached the transport"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	cancellations, err := meter.Int64Counter(
		"api.client.cancellations",
		metric.WithDescription("Requests settled as cancelled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:    totalCount,
		errorCount:    errorCount,
		durationHist:  durationHist,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
		cancellations: cancellations,
	}, nil
}

func (m *metricsImpl) attrs(meta RequestMeta, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", meta.Method),
		attribute.String("url.path", meta.Endpoint),
	}
	attrs = append(attrs, extra...)
	return metric.WithAttributes(attrs...)
}

// RecordRequest records metrics for one dispatched request.
func (m *metricsImpl) RecordRequest(ctx context.Context, meta RequestMeta, duration time.Duration, status int, err error) {
	opt := m.attrs(meta, attribute.Int("http.response.status_code", status))

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordCacheHit(ctx context.Context, meta RequestMeta) {
	m.cacheHits.Add(ctx, 1, m.attrs(meta))
}

func (m *metricsImpl) RecordCacheMiss(ctx context.Context, meta RequestMeta) {
	m.cacheMisses.Add(ctx, 1, m.attrs(meta))
}

func (m *metricsImpl) RecordCancellation(ctx context.Context, meta RequestMeta) {
	m.cancellations.Add(ctx, 1, m.attrs(meta))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() Metrics { return &noopMetrics{} }

func (m *noopMetrics) RecordRequest(context.Context, RequestMeta, time.Duration, int, error) {}
func (m *noopMetrics) RecordCacheHit(context.Context, RequestMeta)                           {}
func (m *noopMetrics) RecordCacheMiss(context.Context, RequestMeta)                          {}
func (m *noopMetrics) RecordCancellation(context.Context, RequestMeta)                       {}
