package ctrace

import (
	"time"

	"github.com/zoobzio/clockz"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestTracer returns a tracer reporting into a collector, stamped by a
// fake clock.
func newTestTracer(cfg Config) (*Tracer, *Collector, *clockz.FakeClock) {
	collector := NewCollector()
	clock := clockz.NewFakeClockAt(testEpoch)
	cfg.Reporter = collector
	cfg.Clock = clock
	return New(cfg), collector, clock
}

// fixedGenerator hands out the same identifiers every time.
type fixedGenerator struct {
	traceID string
	spanID  string
}

func (g fixedGenerator) TraceID() string { return g.traceID }
func (g fixedGenerator) SpanID() string  { return g.spanID }

// logsWithEvent filters a record's log entries by event name.
func logsWithEvent(logs []LogEntry, event string) []LogEntry {
	var out []LogEntry
	for _, entry := range logs {
		if entry.Event() == event {
			out = append(out, entry)
		}
	}
	return out
}
