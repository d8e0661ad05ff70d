package observe

import (
	"context"
	"testing"
	"time"
)

func TestObserverContract_Noops(t *testing.T) {
	obs := NewNoop()

	if obs.Tracer() == nil {
		t.Fatal("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Fatal("expected non-nil meter")
	}
	if obs.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestLoggerContract_With(t *testing.T) {
	logger := &noopLogger{}
	if logger.With(Field{Key: "k", Value: "v"}) == nil {
		t.Fatal("With should return non-nil logger")
	}
}

func TestMetricsContract_NoPanic(t *testing.T) {
	metrics := &noopMetrics{}
	metrics.RecordOp(context.Background(), OpMeta{Name: "noop"}, 10*time.Millisecond, nil)
	metrics.RecordPending(context.Background(), OpMeta{Name: "noop"}, 5)
}

func TestTracerContract_NoPanic(t *testing.T) {
	tracer := newNoopTracer()
	_, span := tracer.StartSpan(context.Background(), OpMeta{Name: "noop"})
	tracer.EndSpan(span, nil)
}
