package ctrace

import "math/rand/v2"

const (
	idLength      = 16
	traceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	spanAlphabet  = traceAlphabet + "-_"
)

// IDGenerator produces trace and span identifiers.
// Implementations must be safe for concurrent use.
type IDGenerator interface {
	TraceID() string
	SpanID() string
}

// RandomGenerator draws identifiers from the runtime's fast PRNG.
// Trace IDs use lowercase alphanumerics, span IDs add '-' and '_'.
// No uniqueness registry is kept.
type RandomGenerator struct{}

// TraceID returns a new 16-character trace identifier.
func (RandomGenerator) TraceID() string {
	return randomID(traceAlphabet)
}

// SpanID returns a new 16-character span identifier.
func (RandomGenerator) SpanID() string {
	return randomID(spanAlphabet)
}

func randomID(alphabet string) string {
	var b [idLength]byte
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b[:])
}
