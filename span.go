package ctrace

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrSpanFinished is returned by lifecycle calls on a span that has
	// already been finished.
	ErrSpanFinished = errors.New("ctrace: span already finished")

	// ErrInvalidTagValue is returned when a tag value is not a string,
	// number or bool.
	ErrInvalidTagValue = errors.New("ctrace: tag value must be a string, number or bool")
)

// Reserved log entry keys.
const (
	logKeyTimestamp = "timestamp"
	logKeyEvent     = "event"
	logKeyLevel     = "level"
)

// LogEntry is one timestamped entry in a span's log. Besides timestamp,
// event and level it holds arbitrary caller fields, which are preserved
// verbatim through encoding.
type LogEntry map[string]any

// Event returns the entry's event name.
func (e LogEntry) Event() string {
	s, _ := e[logKeyEvent].(string)
	return s
}

// Level returns the entry's level.
func (e LogEntry) Level() string {
	s, _ := e[logKeyLevel].(string)
	return s
}

// Timestamp returns the entry's timestamp in milliseconds since the epoch.
func (e LogEntry) Timestamp() int64 {
	ts, _ := e[logKeyTimestamp].(int64)
	return ts
}

func (e LogEntry) clone() LogEntry {
	dst := make(LogEntry, len(e))
	for k, v := range e {
		dst[k] = v
	}
	return dst
}

// Span represents a single unit of work in a distributed trace.
// Spans are NOT thread-safe - do not modify from multiple goroutines.
type Span struct {
	tracer    *Tracer
	context   SpanContext
	operation string
	start     time.Time
	end       time.Time
	tags      Fields
	logs      []LogEntry
	debug     bool
	finished  bool
}

// Span returns s, so a *Span satisfies SpanHolder.
func (s *Span) Span() *Span {
	return s
}

// SpanContext returns a copy of the span's context. Later changes to the
// span's baggage do not affect the returned value.
func (s *Span) SpanContext() SpanContext {
	if s == nil {
		return SpanContext{}
	}
	return s.context.clone()
}

// TraceID returns the span's trace identifier.
func (s *Span) TraceID() string {
	return s.context.TraceID
}

// SpanID returns the span's identifier.
func (s *Span) SpanID() string {
	return s.context.SpanID
}

// ParentID returns the parent span's identifier, or "" for a root span.
func (s *Span) ParentID() string {
	return s.context.ParentID
}

// Operation returns the span's operation name.
func (s *Span) Operation() string {
	return s.operation
}

// StartTime returns when the span started.
func (s *Span) StartTime() time.Time {
	return s.start
}

// IsDebug reports whether the span was started for debug-only emission.
func (s *Span) IsDebug() bool {
	return s.debug
}

// IsFinished reports whether Finish has been called.
func (s *Span) IsFinished() bool {
	return s.finished
}

// Tracer returns the tracer that started the span.
func (s *Span) Tracer() *Tracer {
	return s.tracer
}

// SetOperationName renames the span. No-op once finished.
func (s *Span) SetOperationName(name string) {
	if s.finished {
		return
	}
	s.operation = name
}

// SetTag sets a tag on the span. Values must be strings, numbers or bools.
func (s *Span) SetTag(key string, value any) error {
	if s.finished {
		return ErrSpanFinished
	}
	if !validTagValue(value) {
		return ErrInvalidTagValue
	}
	if s.tags == nil {
		s.tags = make(Fields)
	}
	s.tags[key] = value
	return nil
}

// Tag returns the tag value for key.
func (s *Span) Tag(key string) (any, bool) {
	v, ok := s.tags[key]
	return v, ok
}

// SetBaggageItem sets a baggage item on this span only. Children already
// started keep the baggage they copied at creation. No-op once finished.
func (s *Span) SetBaggageItem(key, value string) {
	if s.finished {
		return
	}
	if s.context.Baggage == nil {
		s.context.Baggage = make(map[string]string)
	}
	s.context.Baggage[key] = value
}

// BaggageItem returns the baggage value for key, or "".
func (s *Span) BaggageItem(key string) string {
	return s.context.Baggage[key]
}

// Log appends an entry stamped with the current time and merged with fields.
// Caller fields win over the timestamp. In multi-event mode the span is
// reported after the entry is appended.
func (s *Span) Log(fields Fields) {
	st := s.tracer.state.Load()
	if s.finished {
		st.logger.Warn("log on finished span",
			zap.String("span_id", s.context.SpanID),
			zap.String("operation", s.operation),
		)
		return
	}
	entry := LogEntry{logKeyTimestamp: st.clock.Now().UnixMilli()}
	for k, v := range fields {
		entry[k] = v
	}
	s.logs = append(s.logs, entry)

	if st.multiEvent {
		s.tracer.report(s)
	}
}

// Logs returns a copy of the span's log entries.
func (s *Span) Logs() []LogEntry {
	return copyLogs(s.logs)
}

// Finish closes the span, appends the Finish-Span entry and reports it,
// unless the span is a debug span and the tracer's Debug flag is off.
// Finishing twice returns ErrSpanFinished and leaves reported state alone.
func (s *Span) Finish() error {
	st := s.tracer.state.Load()
	if s.finished {
		st.logger.Warn("span finished twice",
			zap.String("span_id", s.context.SpanID),
			zap.String("operation", s.operation),
		)
		return ErrSpanFinished
	}

	s.end = st.clock.Now()
	if s.end.Before(s.start) {
		s.end = s.start
	}
	s.logs = append(s.logs, LogEntry{
		logKeyTimestamp: s.end.UnixMilli(),
		logKeyEvent:     EventFinishSpan,
		logKeyLevel:     LevelInfo,
	})
	s.finished = true

	s.tracer.report(s)
	return nil
}

// Record returns a snapshot of the span's field set. The snapshot shares no
// maps or slices with the span.
func (s *Span) Record() Record {
	rec := Record{
		TraceID:   s.context.TraceID,
		SpanID:    s.context.SpanID,
		ParentID:  s.context.ParentID,
		Operation: s.operation,
		Start:     s.start.UnixMilli(),
		Tags:      copyFields(s.tags),
		Logs:      copyLogs(s.logs),
		Baggage:   copyBaggage(s.context.Baggage),
	}
	if s.finished {
		rec.Finish = s.end.UnixMilli()
		duration := rec.Finish - rec.Start
		rec.Duration = &duration
	}
	return rec
}

// Record is the field set a span reports.
type Record struct {
	TraceID   string            `json:"traceId"`
	SpanID    string            `json:"spanId"`
	ParentID  string            `json:"parentId,omitempty"`
	Operation string            `json:"operation"`
	Start     int64             `json:"start"`
	Finish    int64             `json:"finish,omitempty"`
	Duration  *int64            `json:"duration,omitempty"`
	Tags      Fields            `json:"tags,omitempty"`
	Logs      []LogEntry        `json:"logs"`
	Baggage   map[string]string `json:"baggage,omitempty"`
}

func validTagValue(value any) bool {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func copyFields(src Fields) Fields {
	if src == nil {
		return nil
	}
	dst := make(Fields, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyLogs(src []LogEntry) []LogEntry {
	dst := make([]LogEntry, len(src))
	for i, entry := range src {
		dst[i] = entry.clone()
	}
	return dst
}
