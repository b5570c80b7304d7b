// Package integration exercises ctrace across process-style boundaries:
// HTTP hops, broker headers and concurrent span trees.
package integration

import (
	"fmt"
	"strings"
	"testing"

	"github.com/zoobzio/clockz"

	"github.com/zoobzio/ctrace"
)

// MockCollector wraps a real collector with test assertions.
type MockCollector struct {
	*ctrace.Collector
	t *testing.T
}

// NewMockCollector creates a collector for testing.
func NewMockCollector(t *testing.T) *MockCollector {
	return &MockCollector{Collector: ctrace.NewCollector(), t: t}
}

// NewTracer returns a tracer reporting into a fresh collector, stamped by a
// fake clock.
func NewTracer(t *testing.T, cfg ctrace.Config) (*ctrace.Tracer, *MockCollector, *clockz.FakeClock) {
	collector := NewMockCollector(t)
	clock := clockz.NewFakeClock()
	cfg.Reporter = collector.Collector
	cfg.Clock = clock
	return ctrace.New(cfg), collector, clock
}

// AssertRecordCount verifies the exact number of buffered records.
func (m *MockCollector) AssertRecordCount(expected int) {
	m.t.Helper()
	if got := m.Count(); got != expected {
		m.t.Errorf("Expected %d records, got %d", expected, got)
	}
}

// Final returns the last record reported for each span, keyed by operation.
func (m *MockCollector) Final() map[string]ctrace.Record {
	final := make(map[string]ctrace.Record)
	for _, rec := range m.Records() {
		final[rec.Operation] = rec
	}
	return final
}

// AssertParentChild verifies parent-child relationship by operation name.
func (m *MockCollector) AssertParentChild(parentOp, childOp string) {
	m.t.Helper()
	final := m.Final()
	parent, ok := final[parentOp]
	if !ok {
		m.t.Errorf("Parent span '%s' not found", parentOp)
		return
	}
	child, ok := final[childOp]
	if !ok {
		m.t.Errorf("Child span '%s' not found", childOp)
		return
	}

	if child.ParentID != parent.SpanID {
		m.t.Errorf("Parent-child relationship broken: %s is not parent of %s. Child ParentID=%s, Parent SpanID=%s",
			parentOp, childOp, child.ParentID, parent.SpanID)
	}
	if child.TraceID != parent.TraceID {
		m.t.Errorf("Trace ID mismatch: parent=%s, child=%s", parent.TraceID, child.TraceID)
	}
}

// SpanTree represents a hierarchical view of records.
type SpanTree struct {
	Record   ctrace.Record
	Children []*SpanTree
}

// BuildSpanTree constructs a tree from a flat record list, keeping the last
// snapshot of each span.
func BuildSpanTree(records []ctrace.Record) []*SpanTree {
	nodeMap := make(map[string]*SpanTree)
	order := make([]string, 0, len(records))
	for _, rec := range records {
		if node, ok := nodeMap[rec.SpanID]; ok {
			node.Record = rec
			continue
		}
		nodeMap[rec.SpanID] = &SpanTree{Record: rec}
		order = append(order, rec.SpanID)
	}

	roots := make([]*SpanTree, 0)
	for _, id := range order {
		node := nodeMap[id]
		if parent, ok := nodeMap[node.Record.ParentID]; ok && node.Record.ParentID != "" {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

// PrintSpanTree formats a span tree for debugging.
func PrintSpanTree(trees []*SpanTree) string {
	var sb strings.Builder
	for _, tree := range trees {
		printTreeNode(&sb, tree, 0)
	}
	return sb.String()
}

func printTreeNode(sb *strings.Builder, node *SpanTree, depth int) {
	indent := strings.Repeat("  ", depth)
	duration := "open"
	if node.Record.Duration != nil {
		duration = fmt.Sprintf("%dms", *node.Record.Duration)
	}
	fmt.Fprintf(sb, "%s%s (%s)\n", indent, node.Record.Operation, duration)
	for _, child := range node.Children {
		printTreeNode(sb, child, depth+1)
	}
}
