package ctrace

import (
	"sync"
)

// Collector is an in-memory Reporter that buffers span records for
// inspection or batch export. In multi-event mode it holds every snapshot.
// Safe for concurrent use by multiple goroutines.
type Collector struct {
	records []Record
	mu      sync.Mutex
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		records: make([]Record, 0, 8), // Start with small capacity.
	}
}

// Report implements Reporter. Records are snapshots already, so they are
// stored as given.
func (c *Collector) Report(rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return nil
}

// Export returns all buffered records and clears the buffer.
func (c *Collector) Export() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.records) == 0 {
		return nil
	}
	result := make([]Record, len(c.records))
	copy(result, c.records)

	// Shrink only when the buffer is very oversized to avoid allocation churn.
	if cap(c.records) > 256 && len(c.records) < cap(c.records)/8 {
		c.records = make([]Record, 0, cap(c.records)/4)
	} else {
		c.records = c.records[:0]
	}
	return result
}

// Records returns a copy of the buffered records without clearing them.
func (c *Collector) Records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]Record, len(c.records))
	copy(result, c.records)
	return result
}

// BySpanID returns the buffered snapshots for one span, oldest first.
func (c *Collector) BySpanID(spanID string) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []Record
	for _, rec := range c.records {
		if rec.SpanID == spanID {
			result = append(result, rec)
		}
	}
	return result
}

// Count returns the number of buffered records.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Reset clears all buffered records.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = c.records[:0]
}
