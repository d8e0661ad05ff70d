package flow

import (
	"context"
	"errors"
	"time"
)

// Executor composes the flow components around one operation.
type Executor struct {
	retry   *Retry
	limiter *RateLimiter
	timeout time.Duration
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRetry adds retry logic to the executor.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithRateLimiter adds rate limiting to the executor.
func WithRateLimiter(rl *RateLimiter) ExecutorOption {
	return func(e *Executor) {
		e.limiter = rl
	}
}

// WithTimeout bounds each individual attempt's execution time. Attempts that
// exceed it fail with ErrTimeout.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = timeout
	}
}

// NewExecutor creates an executor from the given options. An executor with no
// options runs operations directly.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs op through the configured components.
//
// The composition order is fixed: timeout innermost, then rate limiting,
// then retry outermost. Each retry attempt therefore re-enters the limiter
// queue and takes a fresh admission slot.
func (e *Executor) Execute(ctx context.Context, op Op) (any, error) {
	execute := op

	if e.timeout > 0 {
		inner := execute
		execute = func(ctx context.Context) (any, error) {
			return e.executeWithTimeout(ctx, inner)
		}
	}

	if e.limiter != nil {
		inner := execute
		execute = func(ctx context.Context) (any, error) {
			return e.limiter.Do(ctx, inner)
		}
	}

	if e.retry != nil {
		inner := execute
		execute = func(ctx context.Context) (any, error) {
			return e.retry.Execute(ctx, inner)
		}
	}

	return execute(ctx)
}

// executeWithTimeout runs op under a deadline. The op goroutine is not
// forcibly stopped on timeout; it is expected to observe its ctx.
func (e *Executor) executeWithTimeout(ctx context.Context, op Op) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan Result, 1)

	go func() {
		value, err := op(ctx)
		done <- Result{Value: value, Err: err}
	}()

	select {
	case res := <-done:
		return res.Value, res.Err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}
