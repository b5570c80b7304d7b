package ctrace

// SpanHolder exposes the span a level helper logs to. *Span is a holder, as
// is any request-scoped value that carries one.
type SpanHolder interface {
	Span() *Span
}

// Debug logs event at debug level, tagged debug=true, only while the
// tracer's Debug flag is on. The flag is read at call time, so Init takes
// effect immediately.
func (t *Tracer) Debug(holder SpanHolder, event string, data Fields) {
	if !t.IsDebug() {
		return
	}
	logLevel(holder, LevelDebug, event, Fields{"debug": true}, data)
}

// Info logs event at info level.
func (t *Tracer) Info(holder SpanHolder, event string, data Fields) {
	logLevel(holder, LevelInfo, event, nil, data)
}

// Warn logs event at warn level.
func (t *Tracer) Warn(holder SpanHolder, event string, data Fields) {
	logLevel(holder, LevelWarn, event, nil, data)
}

// Error logs event at error level, tagged error=true.
func (t *Tracer) Error(holder SpanHolder, event string, data Fields) {
	logLevel(holder, LevelError, event, Fields{"error": true}, data)
}

// logLevel builds {event, level, ...marker, ...data}; caller data wins on
// conflicting keys.
func logLevel(holder SpanHolder, level, event string, marker, data Fields) {
	if holder == nil {
		return
	}
	span := holder.Span()
	if span == nil {
		return
	}
	entry := make(Fields, len(marker)+len(data)+2)
	entry[logKeyEvent] = event
	entry[logKeyLevel] = level
	for k, v := range marker {
		entry[k] = v
	}
	for k, v := range data {
		entry[k] = v
	}
	span.Log(entry)
}
