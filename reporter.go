package ctrace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bytedance/sonic"
)

// ErrNilStream is returned when a reporter has nowhere to write.
var ErrNilStream = errors.New("ctrace: nil stream")

// Encoder turns a span record into bytes. Encodings must be deterministic
// and self-describing, one record per call.
type Encoder interface {
	Encode(rec Record) ([]byte, error)
}

// Reporter persists span records. The tracer does not retry a failed
// Report; the error is logged and counted.
type Reporter interface {
	Report(rec Record) error
}

// JSONEncoder encodes each record as one JSON object followed by a newline.
// Map keys are sorted so equal records encode identically.
type JSONEncoder struct{}

// Encode implements Encoder.
func (JSONEncoder) Encode(rec Record) ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode span %s: %w", rec.SpanID, err)
	}
	return append(data, '\n'), nil
}

// StreamReporter encodes records and writes them to a byte sink. No
// batching, no backpressure.
type StreamReporter struct {
	encoder Encoder
	stream  io.Writer
	mu      sync.Mutex // Keeps one record per Write on shared sinks.
}

// NewReporter creates a reporter. A nil encoder defaults to JSONEncoder and
// a nil stream to standard output.
func NewReporter(encoder Encoder, stream io.Writer) *StreamReporter {
	if encoder == nil {
		encoder = JSONEncoder{}
	}
	if stream == nil {
		stream = os.Stdout
	}
	return &StreamReporter{encoder: encoder, stream: stream}
}

// Report implements Reporter.
func (r *StreamReporter) Report(rec Record) error {
	if r.stream == nil {
		return ErrNilStream
	}
	encoder := r.encoder
	if encoder == nil {
		encoder = JSONEncoder{}
	}
	data, err := encoder.Encode(rec)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.stream.Write(data); err != nil {
		return fmt.Errorf("write span %s: %w", rec.SpanID, err)
	}
	return nil
}
