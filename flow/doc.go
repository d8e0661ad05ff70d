// Package flow provides async flow control for units of work: a delay
// primitive, a retry controller, and a queued sliding-window rate limiter.
//
// A unit of work is an Op, a caller-supplied operation that produces a value
// or an error. Retry and RateLimiter mediate when and how often an Op runs;
// they never interpret its result.
//
// # Components
//
//   - Delay: pauses the caller for a duration, clamping negative values to
//     zero. The only suspension point used by the other components.
//
//   - Retry: re-invokes an Op up to a fixed number of attempts with a fixed
//     pause between them, returning a terminal error once the attempt budget
//     is spent.
//
//   - RateLimiter: queues submitted Ops and admits them in strict submission
//     order, at most MaxRequests starts per sliding Interval. A single drain
//     goroutine owns admission; submitting never blocks the caller.
//
//   - Executor: composes the above around one operation.
//
// # Usage
//
//	// Retry a flaky call up to 3 times, pausing 100ms between attempts.
//	retry := flow.NewRetry(flow.RetryPolicy{
//	    MaxRetries: 3,
//	    Delay:      100 * time.Millisecond,
//	})
//
//	result, err := retry.Execute(ctx, func(ctx context.Context) (any, error) {
//	    return fetchQuote(ctx)
//	})
//
//	// Admit at most 2 calls per second, queueing the rest.
//	limiter := flow.NewRateLimiter(flow.RateLimitPolicy{
//	    MaxRequests: 2,
//	    Interval:    time.Second,
//	})
//
//	result, err = limiter.Do(ctx, func(ctx context.Context) (any, error) {
//	    return postEvent(ctx)
//	})
//
// Policies are replaced wholesale by SetPolicy, never merged: fields omitted
// from the new policy fall back to their documented defaults, not to their
// previous values.
//
// Neither component exposes cancellation of scheduled work: once an Op is
// submitted it will run. An Op that must abort early checks its own ctx.
package flow
