package ctrace

import "context"

// SpanContext identifies a span within a trace and carries its baggage.
// A root span has an empty ParentID.
type SpanContext struct {
	TraceID  string
	SpanID   string
	ParentID string
	Baggage  map[string]string
}

// ContextHolder is anything a child span can be started from: a *Span or a
// SpanContext (typically one returned by Extract).
type ContextHolder interface {
	SpanContext() SpanContext
}

// SpanContext returns a copy of c, so a SpanContext satisfies ContextHolder.
func (c SpanContext) SpanContext() SpanContext {
	return c.clone()
}

// BaggageItem returns the baggage value for key, or "" if unset.
func (c SpanContext) BaggageItem(key string) string {
	return c.Baggage[key]
}

// clone copies the baggage map so the result shares nothing with c.
func (c SpanContext) clone() SpanContext {
	c.Baggage = copyBaggage(c.Baggage)
	return c
}

func copyBaggage(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// spanKeyType is a private type for context keys to avoid collisions.
type spanKeyType struct{}

var spanKey spanKeyType

// ContextWithSpan returns a copy of ctx carrying span.
func ContextWithSpan(ctx context.Context, span *Span) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey, span)
}

// SpanFromContext returns the span stored in ctx, or nil.
func SpanFromContext(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	span, _ := ctx.Value(spanKey).(*Span)
	return span
}
