package ctrace

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Extraction results used as the "result" label.
const (
	extractHit  = "hit"
	extractMiss = "miss"
)

// Metrics holds the tracer's Prometheus instruments. A nil *Metrics records
// nothing.
type Metrics struct {
	SpansStarted    prometheus.Counter
	SpansReported   prometheus.Counter
	SpansSuppressed prometheus.Counter
	ReportErrors    prometheus.Counter
	Extractions     *prometheus.CounterVec
	Injections      *prometheus.CounterVec
}

// NewMetrics creates the tracer instruments and registers them with reg.
// A nil reg uses a fresh private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		SpansStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrace_spans_started_total",
			Help: "Total number of spans started",
		}),
		SpansReported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrace_spans_reported_total",
			Help: "Total number of span records written by the reporter",
		}),
		SpansSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrace_spans_suppressed_total",
			Help: "Total number of debug span reports withheld while debug is off",
		}),
		ReportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctrace_report_errors_total",
			Help: "Total number of span reports the reporter failed to write",
		}),
		Extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctrace_extractions_total",
				Help: "Total number of context extractions by format and result",
			},
			[]string{"format", "result"},
		),
		Injections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctrace_injections_total",
				Help: "Total number of context injections by format",
			},
			[]string{"format"},
		),
	}
	reg.MustRegister(
		m.SpansStarted,
		m.SpansReported,
		m.SpansSuppressed,
		m.ReportErrors,
		m.Extractions,
		m.Injections,
	)
	return m
}

func (m *Metrics) spanStarted() {
	if m != nil {
		m.SpansStarted.Inc()
	}
}

func (m *Metrics) spanReported() {
	if m != nil {
		m.SpansReported.Inc()
	}
}

func (m *Metrics) spanSuppressed() {
	if m != nil {
		m.SpansSuppressed.Inc()
	}
}

func (m *Metrics) reportFailed() {
	if m != nil {
		m.ReportErrors.Inc()
	}
}

func (m *Metrics) extracted(format string, ok bool) {
	if m == nil {
		return
	}
	result := extractMiss
	if ok {
		result = extractHit
	}
	m.Extractions.WithLabelValues(format, result).Inc()
}

func (m *Metrics) injected(format string) {
	if m != nil {
		m.Injections.WithLabelValues(format).Inc()
	}
}
