package ctrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	w3cTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	w3cSpanID  = "00f067aa0ba902b7"
)

func TestW3CTraceContextExtract(t *testing.T) {
	carrier := MapCarrier{
		"traceparent": "00-" + w3cTraceID + "-" + w3cSpanID + "-01",
		"baggage":     "tenant=acme",
	}

	sc, ok := W3CTraceContext().Extract(carrier)
	require.True(t, ok)
	assert.Equal(t, w3cTraceID, sc.TraceID)
	assert.Equal(t, w3cSpanID, sc.SpanID)
	assert.Equal(t, map[string]string{"tenant": "acme"}, sc.Baggage)
}

func TestW3CTraceContextExtractMissing(t *testing.T) {
	_, ok := W3CTraceContext().Extract(MapCarrier{"traceparent": "garbage"})
	assert.False(t, ok)
}

func TestW3CTraceContextInject(t *testing.T) {
	carrier := MapCarrier{}
	W3CTraceContext().Inject(SpanContext{
		TraceID: w3cTraceID,
		SpanID:  w3cSpanID,
		Baggage: map[string]string{"tenant": "acme"},
	}, carrier)

	assert.Equal(t, "00-"+w3cTraceID+"-"+w3cSpanID+"-01", carrier["traceparent"])
	assert.Equal(t, "tenant=acme", carrier["baggage"])
}

func TestW3CTraceContextInjectSkipsNativeIDs(t *testing.T) {
	carrier := MapCarrier{}
	W3CTraceContext().Inject(SpanContext{TraceID: "abc", SpanID: "def"}, carrier)
	assert.Empty(t, carrier)
}

func TestW3CChainedAfterDefault(t *testing.T) {
	tracer, _, _ := newTestTracer(Config{
		Propagators: map[string][]Propagator{
			FormatHTTPHeaders: {W3CTraceContext()},
		},
	})

	header := HeaderCarrier{}
	header.Set("traceparent", "00-"+w3cTraceID+"-"+w3cSpanID+"-01")

	parent, ok := tracer.Extract(FormatHTTPHeaders, header)
	require.True(t, ok)

	child := tracer.StartSpan("server", ChildOf(parent))
	assert.Equal(t, w3cTraceID, child.TraceID())
	assert.Equal(t, w3cSpanID, child.ParentID())
}

func TestW3CBaggageInjectOnly(t *testing.T) {
	p := W3CBaggage()
	assert.Nil(t, p.Extract)

	carrier := MapCarrier{}
	p.Inject(SpanContext{Baggage: map[string]string{"k": "v"}}, carrier)
	assert.Equal(t, "k=v", carrier["baggage"])
}
