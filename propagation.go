package ctrace

import (
	"sort"
	"strings"
)

// Carrier keys written and read by the default propagator.
const (
	KeyTraceID       = "ct-trace-id"
	KeySpanID        = "ct-span-id"
	KeyBaggagePrefix = "ct-bag-"
)

// Extractor reads a SpanContext from a carrier. ok is false when the carrier
// holds no context this extractor understands.
type Extractor func(carrier Carrier) (sc SpanContext, ok bool)

// Injector writes a SpanContext into a carrier.
type Injector func(sc SpanContext, carrier Carrier)

// Propagator serializes span contexts for one carrier format. Either side may
// be nil: a chain skips entries lacking the capability it needs, so
// inject-only and extract-only propagators are fine.
type Propagator struct {
	Extract Extractor
	Inject  Injector
}

// DefaultPropagator returns the built-in ct-* propagator registered for
// FormatHTTPHeaders and FormatTextMap.
func DefaultPropagator() Propagator {
	return Propagator{
		Extract: extractDefault,
		Inject:  injectDefault,
	}
}

func injectDefault(sc SpanContext, carrier Carrier) {
	if sc.TraceID != "" {
		carrier.Set(KeyTraceID, sc.TraceID)
	}
	if sc.SpanID != "" {
		carrier.Set(KeySpanID, sc.SpanID)
	}
	for k, v := range sc.Baggage {
		carrier.Set(KeyBaggagePrefix+k, v)
	}
}

// extractDefault requires both identifiers. A carrier holding only one of
// them yields nothing so the chain can fall through to later propagators.
func extractDefault(carrier Carrier) (SpanContext, bool) {
	traceID := carrier.Get(KeyTraceID)
	spanID := carrier.Get(KeySpanID)
	if traceID == "" || spanID == "" {
		return SpanContext{}, false
	}

	sc := SpanContext{TraceID: traceID, SpanID: spanID}
	_, canonical := carrier.(HeaderCarrier)
	for _, key := range carrier.Keys() {
		if len(key) <= len(KeyBaggagePrefix) || !strings.EqualFold(key[:len(KeyBaggagePrefix)], KeyBaggagePrefix) {
			continue
		}
		name := key[len(KeyBaggagePrefix):]
		if canonical {
			// http.Header canonicalizes keys; lowercase recovers what was set.
			name = strings.ToLower(name)
		}
		if sc.Baggage == nil {
			sc.Baggage = make(map[string]string)
		}
		sc.Baggage[name] = carrier.Get(key)
	}
	return sc, true
}

// Registry holds an ordered propagator chain per format key. The built-in
// default propagator always comes first for the built-in formats, followed by
// caller-supplied propagators in the order given.
type Registry struct {
	chains map[string][]Propagator
}

// NewRegistry builds a registry from the defaults plus custom propagators.
func NewRegistry(custom map[string][]Propagator) *Registry {
	r := &Registry{chains: map[string][]Propagator{
		FormatHTTPHeaders: {DefaultPropagator()},
		FormatTextMap:     {DefaultPropagator()},
	}}
	for format, props := range custom {
		r.chains[format] = append(r.chains[format], props...)
	}
	return r
}

// Chain returns a copy of the propagator chain for format.
func (r *Registry) Chain(format string) []Propagator {
	chain := r.chains[format]
	out := make([]Propagator, len(chain))
	copy(out, chain)
	return out
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.chains))
	for format := range r.chains {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Extract walks the chain for format in order and returns the first context
// an extractor produces. Entries without an extractor are skipped.
func (r *Registry) Extract(format string, carrier Carrier) (SpanContext, bool) {
	if carrier == nil {
		return SpanContext{}, false
	}
	for _, p := range r.chains[format] {
		if p.Extract == nil {
			continue
		}
		if sc, ok := p.Extract(carrier); ok {
			return sc, true
		}
	}
	return SpanContext{}, false
}

// Inject runs every injector in the chain for format, in order, against the
// same carrier. Later injectors overwrite keys written by earlier ones.
func (r *Registry) Inject(sc SpanContext, format string, carrier Carrier) {
	if carrier == nil {
		return
	}
	for _, p := range r.chains[format] {
		if p.Inject == nil {
			continue
		}
		p.Inject(sc, carrier)
	}
}
