package ctrace

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewCollector(t *testing.T) {
	collector := NewCollector()

	if collector == nil {
		t.Fatal("Expected collector to be created")
	}
	if collector.Count() != 0 {
		t.Errorf("Expected 0 records initially, got %d", collector.Count())
	}
	if collector.Export() != nil {
		t.Error("Expected nil export from empty collector")
	}
}

func TestCollectorBasicCollection(t *testing.T) {
	collector := NewCollector()

	if err := collector.Report(Record{SpanID: "test-span-1", TraceID: "test-trace-1", Operation: "test-operation"}); err != nil {
		t.Fatalf("Report: %v", err)
	}

	if collector.Count() != 1 {
		t.Errorf("Expected 1 record, got %d", collector.Count())
	}

	records := collector.Export()
	if len(records) != 1 {
		t.Fatalf("Expected 1 exported record, got %d", len(records))
	}
	if records[0].SpanID != "test-span-1" {
		t.Errorf("Expected span ID 'test-span-1', got %s", records[0].SpanID)
	}

	// After export, collector should be empty.
	if collector.Count() != 0 {
		t.Errorf("Expected 0 records after export, got %d", collector.Count())
	}
}

func TestCollectorMemoryShrink(t *testing.T) {
	collector := NewCollector()

	numRecords := 1000
	for i := 0; i < numRecords; i++ {
		_ = collector.Report(Record{SpanID: "test-span"})
	}
	if got := len(collector.Export()); got != numRecords {
		t.Errorf("Expected %d records in export, got %d", numRecords, got)
	}

	for i := 0; i < 5; i++ {
		_ = collector.Report(Record{SpanID: "small-span"})
	}
	if got := len(collector.Export()); got != 5 {
		t.Errorf("Expected 5 records after small batch, got %d", got)
	}
	if cap(collector.records) > numRecords {
		t.Errorf("Expected buffer to shrink, capacity %d", cap(collector.records))
	}
}

func TestCollectorExportCopy(t *testing.T) {
	tracer, collector, _ := newTestTracer(Config{})
	span := tracer.StartSpan("operation", WithTag("key", "value"))
	_ = span.Finish()

	exported := collector.Export()
	if len(exported) != 1 {
		t.Fatalf("Expected 1 exported record, got %d", len(exported))
	}

	// Modify the exported record.
	exported[0].Tags["key"] = "modified"
	exported[0].Logs[0]["event"] = "modified"

	if v, _ := span.Tag("key"); v != "value" {
		t.Errorf("Expected span tag 'value', got %v", v)
	}
	if span.Logs()[0].Event() != EventStartSpan {
		t.Error("Expected span logs untouched by record mutation")
	}
}

func TestCollectorBySpanID(t *testing.T) {
	collector := NewCollector()
	_ = collector.Report(Record{SpanID: "a", Operation: "first"})
	_ = collector.Report(Record{SpanID: "b"})
	_ = collector.Report(Record{SpanID: "a", Operation: "second"})

	records := collector.BySpanID("a")
	if len(records) != 2 {
		t.Fatalf("Expected 2 records for span a, got %d", len(records))
	}
	if records[0].Operation != "first" || records[1].Operation != "second" {
		t.Errorf("Expected records oldest first, got %q then %q", records[0].Operation, records[1].Operation)
	}
	if collector.Count() != 3 {
		t.Errorf("Expected BySpanID to leave records buffered, got %d", collector.Count())
	}
}

func TestCollectorReset(t *testing.T) {
	collector := NewCollector()
	for i := 0; i < 5; i++ {
		_ = collector.Report(Record{SpanID: "span"})
	}

	if collector.Count() != 5 {
		t.Errorf("Expected 5 records before reset, got %d", collector.Count())
	}

	collector.Reset()

	if collector.Count() != 0 {
		t.Errorf("Expected 0 records after reset, got %d", collector.Count())
	}
}

func TestCollectorConcurrentCollection(t *testing.T) {
	collector := NewCollector()

	var wg sync.WaitGroup
	numGoroutines := 10
	recordsPerGoroutine := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < recordsPerGoroutine; j++ {
				_ = collector.Report(Record{SpanID: fmt.Sprintf("span-%d-%d", id, j)})
			}
		}(i)
	}
	wg.Wait()

	expected := numGoroutines * recordsPerGoroutine
	if collector.Count() != expected {
		t.Errorf("Expected %d records, got %d", expected, collector.Count())
	}
}

func TestCollectorConcurrentExport(t *testing.T) {
	collector := NewCollector()

	var wg sync.WaitGroup
	var mu sync.Mutex
	exported := 0

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = collector.Report(Record{SpanID: "span"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			n := len(collector.Export())
			mu.Lock()
			exported += n
			mu.Unlock()
		}
	}()
	wg.Wait()

	exported += len(collector.Export())
	if exported != 500 {
		t.Errorf("Expected 500 records across exports, got %d", exported)
	}
}
