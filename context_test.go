package ctrace

import (
	"context"
	"testing"
)

func TestSpanContextClone(t *testing.T) {
	sc := SpanContext{TraceID: "t", SpanID: "s", Baggage: map[string]string{"k": "v"}}

	dup := sc.SpanContext()
	dup.Baggage["k"] = "changed"

	if sc.Baggage["k"] != "v" {
		t.Error("Expected SpanContext() to copy baggage")
	}
}

func TestSpanContextCloneNilBaggage(t *testing.T) {
	sc := SpanContext{TraceID: "t", SpanID: "s"}
	if sc.SpanContext().Baggage != nil {
		t.Error("Expected nil baggage to stay nil")
	}
	if sc.BaggageItem("missing") != "" {
		t.Error("Expected empty baggage item")
	}
}

func TestContextWithSpan(t *testing.T) {
	tracer, _, _ := newTestTracer(Config{})
	span := tracer.StartSpan("ctx")

	ctx := ContextWithSpan(context.Background(), span)
	if got := SpanFromContext(ctx); got != span {
		t.Error("Expected span from context")
	}
}

func TestSpanFromContextEmpty(t *testing.T) {
	if SpanFromContext(context.Background()) != nil {
		t.Error("Expected nil span from empty context")
	}
	//nolint:staticcheck // nil context is tolerated
	if SpanFromContext(nil) != nil {
		t.Error("Expected nil span from nil context")
	}
}

func TestContextKeySafety(t *testing.T) {
	tracer, _, _ := newTestTracer(Config{})
	span := tracer.StartSpan("ctx")

	// A string key with a similar name must not collide.
	ctx := context.WithValue(context.Background(), "spanKey", "not-a-span") //nolint:staticcheck // collision check
	ctx = ContextWithSpan(ctx, span)

	if SpanFromContext(ctx) != span {
		t.Error("Expected typed key to win")
	}
	if ctx.Value("spanKey") != "not-a-span" {
		t.Error("Expected string key value untouched")
	}
}

func TestStartSpanFromContext(t *testing.T) {
	tracer, _, _ := newTestTracer(Config{})

	ctx, parent := tracer.StartSpanFromContext(context.Background(), "parent")
	if parent.ParentID() != "" {
		t.Error("Expected root span from empty context")
	}

	_, child := tracer.StartSpanFromContext(ctx, "child")
	if child.ParentID() != parent.SpanID() {
		t.Errorf("Expected parent %s, got %s", parent.SpanID(), child.ParentID())
	}
	if child.TraceID() != parent.TraceID() {
		t.Error("Expected child to share trace")
	}
}

func TestStartSpanFromContextExplicitParentWins(t *testing.T) {
	tracer, _, _ := newTestTracer(Config{})

	ctx, _ := tracer.StartSpanFromContext(context.Background(), "ambient")
	other := tracer.StartSpan("other")

	_, child := tracer.StartSpanFromContext(ctx, "child", ChildOf(other))
	if child.ParentID() != other.SpanID() {
		t.Errorf("Expected explicit parent %s, got %s", other.SpanID(), child.ParentID())
	}
}
