package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics records operation metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordOp records one operation with its duration and error status.
	RecordOp(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordPending records the current depth of a pending-work queue.
	RecordPending(ctx context.Context, meta OpMeta, pending int)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	pendingGauge metric.Int64Gauge
}

var _ Metrics = (*metricsImpl)(nil)

// newMetrics builds the instrument set on the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"mxweb.ops.total",
		metric.WithDescription("Total number of operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"mxweb.ops.errors",
		metric.WithDescription("Total number of failed operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"mxweb.op.duration",
		metric.WithDescription("Operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	pendingGauge, err := meter.Int64Gauge(
		"mxweb.limiter.pending",
		metric.WithDescription("Operations queued behind the rate limiter"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		pendingGauge: pendingGauge,
	}, nil
}

func (m *metricsImpl) RecordOp(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, duration.Seconds(), opt)
}

func (m *metricsImpl) RecordPending(ctx context.Context, meta OpMeta, pending int) {
	m.pendingGauge.Record(ctx, int64(pending), metric.WithAttributes(meta.attributes()...))
}

// noopMetrics discards everything.
type noopMetrics struct{}

var _ Metrics = (*noopMetrics)(nil)

func (m *noopMetrics) RecordOp(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordPending(ctx context.Context, meta OpMeta, pending int) {}
