package ctrace

import "sync"

var (
	globalTracer *Tracer
	globalOnce   sync.Once
)

// Global returns the process-wide tracer. Until Init is called it runs with
// DefaultConfig.
func Global() *Tracer {
	globalOnce.Do(func() {
		globalTracer = New(DefaultConfig())
	})
	return globalTracer
}

// Init replaces the process-wide tracer's configuration and returns it.
func Init(cfg Config) *Tracer {
	t := Global()
	t.Init(cfg)
	return t
}

// StartSpan starts a span on the global tracer.
func StartSpan(operation string, opts ...StartOption) *Span {
	return Global().StartSpan(operation, opts...)
}

// Inject injects sc through the global tracer.
func Inject(sc SpanContext, format string, carrier Carrier) {
	Global().Inject(sc, format, carrier)
}

// Extract extracts a SpanContext through the global tracer.
func Extract(format string, carrier Carrier) (SpanContext, bool) {
	return Global().Extract(format, carrier)
}

// Debug logs through the global tracer. See Tracer.Debug.
func Debug(holder SpanHolder, event string, data Fields) {
	Global().Debug(holder, event, data)
}

// Info logs through the global tracer.
func Info(holder SpanHolder, event string, data Fields) {
	Global().Info(holder, event, data)
}

// Warn logs through the global tracer.
func Warn(holder SpanHolder, event string, data Fields) {
	Global().Warn(holder, event, data)
}

// Error logs through the global tracer.
func Error(holder SpanHolder, event string, data Fields) {
	Global().Error(holder, event, data)
}
