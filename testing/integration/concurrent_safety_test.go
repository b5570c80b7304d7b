package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/ctrace"
)

// TestCrossGoroutineContextPropagation verifies parent-child relationships
// across goroutine boundaries.
func TestCrossGoroutineContextPropagation(t *testing.T) {
	tracer, collector, _ := NewTracer(t, ctrace.Config{})

	ctx, parent := tracer.StartSpanFromContext(context.Background(), "parent-operation")

	var wg sync.WaitGroup
	childCount := 10
	for i := 0; i < childCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, child := tracer.StartSpanFromContext(ctx, fmt.Sprintf("child-%d", idx))
			_ = child.SetTag("goroutine.index", idx)
			_ = child.Finish()
		}(i)
	}
	wg.Wait()
	require.NoError(t, parent.Finish())

	collector.AssertRecordCount(childCount + 1)
	for i := 0; i < childCount; i++ {
		collector.AssertParentChild("parent-operation", fmt.Sprintf("child-%d", i))
	}
}

// TestConcurrentPropagation injects and extracts from many goroutines
// against one tracer.
func TestConcurrentPropagation(t *testing.T) {
	tracer, _, _ := NewTracer(t, ctrace.Config{})

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			span := tracer.StartSpan("hop")
			span.SetBaggageItem("n", fmt.Sprint(idx))

			carrier := ctrace.MapCarrier{}
			tracer.Inject(span.SpanContext(), ctrace.FormatTextMap, carrier)
			sc, ok := tracer.Extract(ctrace.FormatTextMap, carrier)
			if !ok || sc.SpanID != span.SpanID() || sc.BaggageItem("n") != fmt.Sprint(idx) {
				errs <- fmt.Errorf("goroutine %d: round trip mismatch %+v", idx, sc)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
