package flow

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

// Defaults for RateLimitPolicy.
const (
	// DefaultMaxRequests is the admission capacity used when
	// RateLimitPolicy.MaxRequests is unset or non-positive.
	DefaultMaxRequests = 1

	// DefaultInterval is the sliding window span used when
	// RateLimitPolicy.Interval is unset.
	DefaultInterval = 1500 * time.Millisecond
)

// RateLimitPolicy configures a RateLimiter.
type RateLimitPolicy struct {
	// MaxRequests is the maximum number of operations admitted to start
	// within any sliding Interval. Non-positive values fall back to the
	// default. There is no upper bound.
	// Default: 1
	MaxRequests int

	// Interval is the span of the sliding admission window.
	// Default: 1500ms
	Interval time.Duration
}

// RateLimiterOption configures a RateLimiter beyond its policy.
type RateLimiterOption func(*RateLimiter)

// WithLimiterClock injects the clock used for admission timestamps and waits.
// Tests use this to drive time deterministically.
func WithLimiterClock(clock Clock) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.clock = clock
	}
}

// queueEntry is one pending submission: the operation plus the channel its
// caller is waiting on. Owned by the limiter from enqueue until the op
// settles, then dropped regardless of the op's outcome.
type queueEntry struct {
	ctx  context.Context
	op   Op
	done chan Result
}

// RateLimiter queues submitted operations and admits them in strict
// submission order, at most MaxRequests starts within any sliding Interval.
//
// A single drain goroutine owns the admission-and-launch critical section:
// it dequeues one entry at a time, waits out the window when it is full,
// invokes the op, and delivers the result before touching the next entry.
// Submission via Handle never blocks the caller. The limiter synthesizes no
// errors of its own; a caller sees its op's result or its op's error, only
// with added latency.
//
// The queue, the admitted-timestamp log, and the draining flag are owned
// exclusively by the limiter and guarded by one mutex.
type RateLimiter struct {
	mu       sync.Mutex
	policy   RateLimitPolicy
	pending  *deque.Deque // of *queueEntry, front is next to admit
	admitted *deque.Deque // of time.Time, oldest first
	draining bool
	clock    Clock
}

// NewRateLimiter creates a rate limiter with the given policy. Zero-value
// policy fields select the documented defaults at admission time.
func NewRateLimiter(policy RateLimitPolicy, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		policy:   policy,
		pending:  deque.New(),
		admitted: deque.New(),
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// SetPolicy replaces the policy wholesale and returns the limiter for
// chaining. This is a full replacement, never a merge: a field omitted from
// the new policy falls back to its default, not to its previous value. The
// new policy governs entries that have not yet passed the admission check;
// entries already admitted are unaffected.
func (rl *RateLimiter) SetPolicy(policy RateLimitPolicy) *RateLimiter {
	rl.mu.Lock()
	rl.policy = policy
	rl.mu.Unlock()
	return rl
}

// Policy returns a snapshot of the current policy as configured, before any
// defaulting.
func (rl *RateLimiter) Policy() RateLimitPolicy {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.policy
}

// Handle enqueues op and returns a buffered channel that receives exactly one
// Result when op settles. It never blocks the caller: if the drain loop is
// idle it is started, otherwise the entry waits its turn in FIFO order.
//
// ctx is handed to op when it is launched. It does not cancel queueing or
// admission: once submitted, the entry will run. An op that must abort early
// checks its own ctx.
func (rl *RateLimiter) Handle(ctx context.Context, op Op) <-chan Result {
	entry := &queueEntry{
		ctx:  ctx,
		op:   op,
		done: make(chan Result, 1),
	}

	rl.mu.Lock()
	rl.pending.PushBack(entry)
	start := !rl.draining
	if start {
		rl.draining = true
	}
	rl.mu.Unlock()

	if start {
		go rl.drain()
	}

	return entry.done
}

// Do submits op via Handle and waits for its result. If ctx expires while
// waiting, Do returns ctx.Err() but the entry still runs to completion in
// the background; its result is delivered to the abandoned channel.
func (rl *RateLimiter) Do(ctx context.Context, op Op) (any, error) {
	done := rl.Handle(ctx, op)

	select {
	case res := <-done:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Pending returns the number of queued entries that have not yet entered the
// admission check.
func (rl *RateLimiter) Pending() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.pending.Len()
}

// drain is the single consumer loop. Exactly one drain goroutine exists
// while the draining flag is set; it exits when the queue empties and is
// restarted by the next Handle.
func (rl *RateLimiter) drain() {
	for {
		rl.mu.Lock()

		if rl.pending.Len() == 0 {
			rl.draining = false
			rl.mu.Unlock()
			return
		}

		entry := rl.pending.PopFront().(*queueEntry)
		maxRequests, interval := rl.effectiveLocked()

		now := rl.clock.Now()
		rl.pruneLocked(now, interval)

		var wait time.Duration
		if rl.admitted.Len() >= maxRequests {
			oldest := rl.admitted.Front().(time.Time)
			wait = oldest.Add(interval).Sub(now)
		}

		rl.mu.Unlock()

		if wait > 0 {
			// Admission waits are not cancellable; only the single drain
			// goroutine ever sleeps here.
			_ = rl.clock.Sleep(context.Background(), wait)
		}

		// The logged timestamp is the time admission was requested, before
		// any wait, not the time the wait finished. This is the external
		// timing contract; do not re-read the clock here.
		rl.mu.Lock()
		rl.admitted.PushBack(now)
		rl.mu.Unlock()

		value, err := entry.op(entry.ctx)
		entry.done <- Result{Value: value, Err: err}
	}
}

// pruneLocked drops every admitted timestamp at or before now-interval,
// leaving only timestamps inside the sliding window (now-interval, now].
func (rl *RateLimiter) pruneLocked(now time.Time, interval time.Duration) {
	cutoff := now.Add(-interval)
	for rl.admitted.Len() > 0 {
		oldest := rl.admitted.Front().(time.Time)
		if oldest.After(cutoff) {
			break
		}
		rl.admitted.PopFront()
	}
}

// effectiveLocked resolves the policy into usable values. Only the zero
// Interval selects the default; a negative Interval is kept, which makes the
// prune empty the log and every entry admit immediately.
func (rl *RateLimiter) effectiveLocked() (maxRequests int, interval time.Duration) {
	maxRequests = rl.policy.MaxRequests
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}

	interval = rl.policy.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	return maxRequests, interval
}
