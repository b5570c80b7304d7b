package ctrace

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

// tracerState is one immutable configuration snapshot. Init swaps it whole.
//
//nolint:govet // Field order optimized for readability over memory
type tracerState struct {
	reporter   Reporter
	registry   *Registry
	logger     *zap.Logger
	clock      clockz.Clock
	ids        IDGenerator
	metrics    *Metrics
	debug      bool
	multiEvent bool
}

// Tracer starts spans and moves span contexts across wire boundaries.
// Safe for concurrent use by multiple goroutines.
type Tracer struct {
	state atomic.Pointer[tracerState]
}

// New creates a tracer configured by cfg.
func New(cfg Config) *Tracer {
	t := &Tracer{}
	t.Init(cfg)
	return t
}

// Init replaces the tracer's configuration wholesale. Nothing from a previous
// Init survives; unset fields take their defaults. Spans already started pick
// up the new configuration the next time they log or report.
//
// Init is meant for process startup and test setup. It does not coordinate
// with spans in flight.
func (t *Tracer) Init(cfg Config) {
	st := &tracerState{
		registry:   NewRegistry(cfg.Propagators),
		logger:     cfg.Logger,
		clock:      cfg.Clock,
		ids:        cfg.Generator,
		metrics:    cfg.Metrics,
		debug:      cfg.Debug,
		multiEvent: cfg.MultiEvent,
		reporter:   cfg.Reporter,
	}
	if st.logger == nil {
		st.logger = zap.NewNop()
	}
	if st.clock == nil {
		st.clock = clockz.RealClock
	}
	if st.ids == nil {
		st.ids = RandomGenerator{}
	}
	if st.reporter == nil {
		st.reporter = NewReporter(cfg.Encoder, cfg.Stream)
	}

	t.state.Store(st)
	st.logger.Debug("tracer initialized",
		zap.Bool("debug", st.debug),
		zap.Bool("multi_event", st.multiEvent),
		zap.Strings("formats", st.registry.Formats()),
	)
}

// IsDebug reports the tracer's current Debug flag.
func (t *Tracer) IsDebug() bool {
	return t.state.Load().debug
}

// IsMultiEvent reports whether spans are reported on every lifecycle event.
func (t *Tracer) IsMultiEvent() bool {
	return t.state.Load().multiEvent
}

// Registry returns the tracer's current propagator registry.
func (t *Tracer) Registry() *Registry {
	return t.state.Load().registry
}

// StartOption configures StartSpan.
type StartOption func(*startConfig)

type startConfig struct {
	parent    ContextHolder
	tags      Fields
	startTime time.Time
	debug     bool
}

// ChildOf makes the new span a child of parent. parent may be a *Span or a
// SpanContext; one without a trace ID is ignored.
func ChildOf(parent ContextHolder) StartOption {
	return func(c *startConfig) {
		c.parent = parent
	}
}

// WithTags merges tags into the new span's tag set.
func WithTags(tags Fields) StartOption {
	return func(c *startConfig) {
		if c.tags == nil {
			c.tags = make(Fields, len(tags))
		}
		for k, v := range tags {
			c.tags[k] = v
		}
	}
}

// WithTag sets a single tag on the new span.
func WithTag(key string, value any) StartOption {
	return WithTags(Fields{key: value})
}

// WithDebug flags the span for debug-only emission.
func WithDebug(debug bool) StartOption {
	return func(c *startConfig) {
		c.debug = debug
	}
}

// WithStartTime overrides the span's start time.
func WithStartTime(start time.Time) StartOption {
	return func(c *startConfig) {
		c.startTime = start
	}
}

// StartSpan creates a span for operation. Without ChildOf the span starts a
// new trace. In multi-event mode the span is reported before StartSpan
// returns.
func (t *Tracer) StartSpan(operation string, opts ...StartOption) *Span {
	st := t.state.Load()

	var cfg startConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	span := &Span{
		tracer:    t,
		operation: operation,
		start:     cfg.startTime,
		debug:     cfg.debug,
		context:   SpanContext{SpanID: st.ids.SpanID()},
	}
	if span.start.IsZero() {
		span.start = st.clock.Now()
	}

	if cfg.parent != nil {
		if parent := cfg.parent.SpanContext(); parent.TraceID != "" {
			span.context.TraceID = parent.TraceID
			span.context.ParentID = parent.SpanID
			// SpanContext() already returned a private copy of the baggage.
			span.context.Baggage = parent.Baggage
		}
	}
	if span.context.TraceID == "" {
		span.context.TraceID = st.ids.TraceID()
	}

	for k, v := range cfg.tags {
		if !validTagValue(v) {
			st.logger.Warn("dropping invalid start tag",
				zap.String("operation", operation),
				zap.String("tag", k),
				zap.Any("value", v),
			)
			continue
		}
		if span.tags == nil {
			span.tags = make(Fields, len(cfg.tags))
		}
		span.tags[k] = v
	}

	seeded := st.clock.Now()
	if seeded.Before(span.start) {
		seeded = span.start
	}
	span.logs = []LogEntry{{
		logKeyTimestamp: seeded.UnixMilli(),
		logKeyEvent:     EventStartSpan,
		logKeyLevel:     LevelInfo,
	}}

	st.metrics.spanStarted()
	if st.multiEvent {
		t.report(span)
	}
	return span
}

// StartSpanFromContext starts a span whose parent is the span in ctx, if any,
// and returns a context carrying the new span. An explicit ChildOf wins.
func (t *Tracer) StartSpanFromContext(ctx context.Context, operation string, opts ...StartOption) (context.Context, *Span) {
	if parent := SpanFromContext(ctx); parent != nil {
		opts = append([]StartOption{ChildOf(parent)}, opts...)
	}
	span := t.StartSpan(operation, opts...)
	return ContextWithSpan(ctx, span), span
}

// Inject writes sc into carrier through every propagator registered for
// format. Unknown formats are a no-op.
func (t *Tracer) Inject(sc SpanContext, format string, carrier Carrier) {
	st := t.state.Load()
	st.registry.Inject(sc, format, carrier)
	st.metrics.injected(format)
}

// Extract reads a SpanContext from carrier using the first propagator for
// format that finds one. ok is false when none does, which is the normal
// case for a request with no incoming trace.
func (t *Tracer) Extract(format string, carrier Carrier) (SpanContext, bool) {
	st := t.state.Load()
	sc, ok := st.registry.Extract(format, carrier)
	st.metrics.extracted(format, ok)
	return sc, ok
}

// report applies the admission rule and hands the span's record to the
// reporter. A debug span is withheld unless the tracer's Debug flag is on.
func (t *Tracer) report(span *Span) {
	st := t.state.Load()
	if span.debug && !st.debug {
		st.metrics.spanSuppressed()
		st.logger.Debug("debug span withheld",
			zap.String("span_id", span.context.SpanID),
			zap.String("operation", span.operation),
		)
		return
	}

	if err := st.reporter.Report(span.Record()); err != nil {
		st.metrics.reportFailed()
		st.logger.Warn("span report failed",
			zap.String("trace_id", span.context.TraceID),
			zap.String("span_id", span.context.SpanID),
			zap.Error(err),
		)
		return
	}
	st.metrics.spanReported()
}
