// Package observe provides telemetry primitives for the request layer.
//
// It is a pure instrumentation library: no dispatching, no transport, no
// I/O beyond exporter setup. The dispatcher wires the observer in; nothing
// here knows about HTTP semantics beyond the request metadata it labels
// spans and metrics with.
package observe
