package observe

import (
	"context"
	"time"

	"github.com/mxwebio/mxweb-utils/flow"
)

// Middleware wraps flow operations with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: WrapOp returns an op safe for concurrent use when the
//     wrapped op is.
//   - Context: the span context is propagated into the wrapped op.
//   - Errors: errors from the wrapped op are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from explicit components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NewMiddlewareFromObserver creates a Middleware from an Observer.
func NewMiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// WrapOp wraps op so every invocation is traced, measured, and logged. The
// returned op is suitable for flow.Retry, flow.RateLimiter, or direct use.
func (m *Middleware) WrapOp(meta OpMeta, op flow.Op) flow.Op {
	logger := m.logger.With(
		Field{Key: "op.name", Value: meta.Name},
		Field{Key: "op.component", Value: meta.Component},
	)

	return func(ctx context.Context) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		value, err := op(ctx)

		duration := time.Since(start)
		m.tracer.EndSpan(span, err)
		m.metrics.RecordOp(ctx, meta, duration, err)

		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "operation failed", fields...)
		} else {
			logger.Debug(ctx, "operation completed", fields...)
		}

		return value, err
	}
}

// ObserveLimiter records the limiter's current queue depth under the given
// metadata. Call it on whatever cadence suits the consumer; each call emits
// one gauge sample.
func (m *Middleware) ObserveLimiter(ctx context.Context, meta OpMeta, limiter *flow.RateLimiter) {
	if limiter == nil {
		return
	}
	m.metrics.RecordPending(ctx, meta, limiter.Pending())
}
