package ctrace

import (
	"sync"
)

// IDPool is an IDGenerator that hands out identifiers pre-generated by a
// background goroutine, falling back to its source when the pool runs dry.
// Close stops the refill goroutines.
type IDPool struct {
	source   IDGenerator
	traceIDs chan string
	spanIDs  chan string
	stopCh   chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewIDPool creates a pool holding up to capacity identifiers of each kind.
// A nil source defaults to RandomGenerator.
func NewIDPool(capacity int, source IDGenerator) *IDPool {
	if source == nil {
		source = RandomGenerator{}
	}
	if capacity < 1 {
		capacity = 1
	}
	pool := &IDPool{
		source:   source,
		traceIDs: make(chan string, capacity),
		spanIDs:  make(chan string, capacity),
		stopCh:   make(chan struct{}),
	}
	go pool.refill(pool.traceIDs, source.TraceID)
	go pool.refill(pool.spanIDs, source.SpanID)
	return pool
}

// TraceID returns a pooled trace identifier.
func (p *IDPool) TraceID() string {
	select {
	case id := <-p.traceIDs:
		return id
	default:
		// Pool empty, generate directly.
		return p.source.TraceID()
	}
}

// SpanID returns a pooled span identifier.
func (p *IDPool) SpanID() string {
	select {
	case id := <-p.spanIDs:
		return id
	default:
		return p.source.SpanID()
	}
}

func (p *IDPool) refill(ids chan<- string, next func() string) {
	for {
		select {
		case ids <- next():
		case <-p.stopCh:
			return
		}
	}
}

// Close shuts down the pool. Identifiers are still served from the source
// after Close.
func (p *IDPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		close(p.stopCh)
		p.closed = true
	}
}
