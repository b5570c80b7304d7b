package httptrace

import (
	"net/http"

	"github.com/zoobzio/ctrace"
)

// Transport is an http.RoundTripper that wraps each outgoing request in a
// client span and injects the span's context into the request headers.
// The span is a child of the span in the request context, if any.
type Transport struct {
	// Base performs the request. Defaults to http.DefaultTransport.
	Base http.RoundTripper
	// Tracer starts client spans. Defaults to ctrace.Global().
	Tracer *ctrace.Tracer
}

// NewTransport wraps base with client tracing.
func NewTransport(tracer *ctrace.Tracer, base http.RoundTripper) *Transport {
	return &Transport{Base: base, Tracer: tracer}
}

// RoundTrip implements http.RoundTripper. The caller's request is never
// modified; headers are injected into a clone.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	tracer := t.Tracer
	if tracer == nil {
		tracer = ctrace.Global()
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx, span := tracer.StartSpanFromContext(req.Context(), "HTTP "+req.Method,
		ctrace.WithTags(ctrace.Fields{
			TagMethod: req.Method,
			TagURL:    req.URL.String(),
		}),
	)
	defer span.Finish() //nolint:errcheck // span is fresh

	out := req.Clone(ctx)
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	tracer.Inject(span.SpanContext(), ctrace.FormatHTTPHeaders, ctrace.HeaderCarrier(out.Header))

	resp, err := base.RoundTrip(out)
	if err != nil {
		_ = span.SetTag(TagError, true)
		tracer.Error(span, "request-failed", ctrace.Fields{"message": err.Error()})
		return resp, err
	}

	_ = span.SetTag(TagStatusCode, resp.StatusCode)
	if resp.StatusCode >= http.StatusInternalServerError {
		_ = span.SetTag(TagError, true)
	}
	return resp, nil
}
