package ctrace

import (
	"context"

	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// W3CTraceContext returns a propagator speaking the W3C traceparent and
// baggage headers, for chaining after the default propagator when peers use
// OpenTelemetry.
//
// Extraction yields the upstream hex identifiers verbatim. Injection only
// writes contexts whose identifiers are valid W3C hex IDs (for example ones
// that were extracted from a traceparent); native ctrace identifiers are left
// to the default propagator.
func W3CTraceContext() Propagator {
	tc := propagation.TraceContext{}
	bp := propagation.Baggage{}
	return Propagator{
		Extract: func(carrier Carrier) (SpanContext, bool) {
			ctx := tc.Extract(context.Background(), carrier)
			remote := trace.SpanContextFromContext(ctx)
			if !remote.IsValid() {
				return SpanContext{}, false
			}
			sc := SpanContext{
				TraceID: remote.TraceID().String(),
				SpanID:  remote.SpanID().String(),
			}
			for _, m := range baggage.FromContext(bp.Extract(ctx, carrier)).Members() {
				if sc.Baggage == nil {
					sc.Baggage = make(map[string]string)
				}
				sc.Baggage[m.Key()] = m.Value()
			}
			return sc, true
		},
		Inject: func(sc SpanContext, carrier Carrier) {
			traceID, err := trace.TraceIDFromHex(sc.TraceID)
			if err != nil {
				return
			}
			spanID, err := trace.SpanIDFromHex(sc.SpanID)
			if err != nil {
				return
			}
			remote := trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    traceID,
				SpanID:     spanID,
				TraceFlags: trace.FlagsSampled,
				Remote:     true,
			})
			ctx := trace.ContextWithRemoteSpanContext(context.Background(), remote)
			tc.Inject(ctx, carrier)
			bp.Inject(withBaggage(ctx, sc.Baggage), carrier)
		},
	}
}

// W3CBaggage returns an inject-only propagator writing the context's baggage
// as a W3C baggage header. Items whose keys are not valid W3C tokens are
// skipped.
func W3CBaggage() Propagator {
	bp := propagation.Baggage{}
	return Propagator{
		Inject: func(sc SpanContext, carrier Carrier) {
			bp.Inject(withBaggage(context.Background(), sc.Baggage), carrier)
		},
	}
}

func withBaggage(ctx context.Context, items map[string]string) context.Context {
	if len(items) == 0 {
		return ctx
	}
	members := make([]baggage.Member, 0, len(items))
	for k, v := range items {
		m, err := baggage.NewMemberRaw(k, v)
		if err != nil {
			continue
		}
		members = append(members, m)
	}
	bag, err := baggage.New(members...)
	if err != nil {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, bag)
}
