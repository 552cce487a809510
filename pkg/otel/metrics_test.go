package otel_test

import (
	"context"
	"testing"

	"github.com/easyops/videorag-go/pkg/otel"
)

func TestInMemoryMetricsCounter(t *testing.T) {
	ctx := context.Background()
	metrics := otel.NewInMemoryMetrics()

	metrics.Counter("requests").Add(ctx, 1)
	metrics.Counter("requests").Add(ctx, 2)

	if got := metrics.CounterValue("requests"); got != 3 {
		t.Fatalf("CounterValue = %d, want 3", got)
	}
	if got := metrics.CounterValue("missing"); got != 0 {
		t.Fatalf("missing counter value = %d, want 0", got)
	}
}

func TestInMemoryMetricsHistogram(t *testing.T) {
	ctx := context.Background()
	metrics := otel.NewInMemoryMetrics()

	h := metrics.Histogram("latency")
	h.Record(ctx, 1.5)
	h.Record(ctx, 2.5)

	// same name returns the same histogram
	values := metrics.Histogram("latency").(*otel.InMemoryHistogram).Values()
	if len(values) != 2 {
		t.Fatalf("expected 2 recorded values, got %d", len(values))
	}
	if values[0] != 1.5 || values[1] != 2.5 {
		t.Errorf("values = %v", values)
	}
}

func TestNoopMetricsSafe(t *testing.T) {
	ctx := context.Background()
	metrics := otel.NewNoopMetrics()

	// must not panic
	metrics.Counter("x").Add(ctx, 1)
	metrics.Histogram("y").Record(ctx, 1.0)
}

func TestNoopTracerSafe(t *testing.T) {
	tracer := otel.NewNoopTracer()

	ctx, span := tracer.Start(context.Background(), "op")
	if ctx == nil {
		t.Fatal("context must be returned")
	}
	span.SetAttributes()
	span.AddEvent("event")
	span.End()

	if span.TraceID() != "" {
		t.Errorf("noop TraceID = %q, want empty", span.TraceID())
	}
}
