package observe

// RequestMeta labels telemetry for one dispatched API request.
type RequestMeta struct {
	Method    string // HTTP verb (required)
	Endpoint  string // request path without query (required)
	RequestID string // logical request identifier (optional)
}

// SpanName returns the deterministic span name for this request.
// Format: api.request.<METHOD> <endpoint>
func (m RequestMeta) SpanName() string {
	return "api.request." + m.Method + " " + m.Endpoint
}
