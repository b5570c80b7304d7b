// Package ctrace provides a small distributed tracing client.
//
// ctrace creates spans for units of work, links them into trace trees across
// process boundaries, and writes each span as one structured record to an
// output stream. Context crosses wire boundaries through ordered chains of
// propagators registered per carrier format.
//
// Core Components:
//   - Tracer: owns configuration, starts spans, injects and extracts contexts.
//   - Span: a mutable record of one unit of work.
//   - SpanContext: trace, span and parent identifiers plus baggage.
//   - Registry: the ordered propagator chains keyed by format.
//   - Reporter: encodes finished (or in-progress) spans to a byte sink.
//
// Basic Usage:
//
//	tracer := ctrace.New(ctrace.DefaultConfig())
//
//	span := tracer.StartSpan("checkout")
//	span.SetTag("user.id", "123")
//	tracer.Info(span, "CartLoaded", ctrace.Fields{"items": 3})
//	_ = span.Finish()
//
//	child := tracer.StartSpan("charge", ctrace.ChildOf(span))
//	defer child.Finish()
//
// Propagation:
//
//	headers := ctrace.MapCarrier{}
//	tracer.Inject(span.SpanContext(), ctrace.FormatHTTPHeaders, headers)
//
//	if sc, ok := tracer.Extract(ctrace.FormatHTTPHeaders, headers); ok {
//		span := tracer.StartSpan("handle", ctrace.ChildOf(sc))
//		defer span.Finish()
//	}
//
// Emission Modes:
//
// In single-event mode (the default) a span is written once, when it
// finishes. In multi-event mode a span is also written when it starts and
// after every log entry, so a stream consumer sees evolving snapshots keyed by
// span ID.
//
// Debug Spans:
//
// A span started WithDebug(true) is withheld entirely unless the tracer's
// Debug flag is on. Every other span is always reported.
//
// Thread Safety:
//
// Tracer is safe for concurrent use. Init swaps configuration atomically but
// is meant for startup and test setup, not for use alongside live traffic.
// Spans are NOT thread-safe - do not mutate the same Span from multiple
// goroutines without external synchronization.
package ctrace

import "go.opentelemetry.io/otel/propagation"

// Built-in format keys. Both are served by the default propagator.
const (
	FormatHTTPHeaders = "http_headers"
	FormatTextMap     = "text_map"
)

// Lifecycle events seeded into every span's logs.
const (
	EventStartSpan  = "Start-Span"
	EventFinishSpan = "Finish-Span"
)

// Log levels used by the level helpers.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Fields is caller-supplied key/value data merged into tags and log entries.
type Fields map[string]any

// Carrier is the string-keyed container a SpanContext is written to and read
// from. It is the OpenTelemetry TextMapCarrier, so carriers written for either
// library work with both.
type Carrier = propagation.TextMapCarrier

// MapCarrier is a Carrier backed by a plain map. Keys are used verbatim.
type MapCarrier = propagation.MapCarrier

// HeaderCarrier is a Carrier backed by http.Header. Keys are canonicalized.
type HeaderCarrier = propagation.HeaderCarrier
