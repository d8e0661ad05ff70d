package flow

import (
	"context"
	"sync"
	"time"
)

// Defaults for RetryPolicy. These are plain constants, not shared mutable
// state: there is nothing to mutate at runtime, so one controller can never
// disturb another.
const (
	// DefaultMaxRetries is the attempt budget used when RetryPolicy.MaxRetries
	// is unset. One means try once, no retry.
	DefaultMaxRetries = 1

	// DefaultRetryDelay is the pause between attempts when RetryPolicy.Delay
	// is unset.
	DefaultRetryDelay = 1500 * time.Millisecond
)

// RetryPolicy configures a Retry controller.
type RetryPolicy struct {
	// MaxRetries is the total number of attempts, including the first.
	// Values below 1 still yield one attempt: the operation always runs
	// at least once, regardless of misconfiguration.
	// Default: 1
	MaxRetries int

	// Delay is the fixed pause between a failed attempt and the next.
	// Negative values are treated as zero.
	// Default: 1500ms
	Delay time.Duration
}

// RetryOption configures a Retry beyond its policy.
type RetryOption func(*Retry)

// WithRetryClock injects the clock used for inter-attempt pauses. Tests use
// this to drive time deterministically.
func WithRetryClock(clock Clock) RetryOption {
	return func(r *Retry) {
		r.clock = clock
	}
}

// Retry re-invokes an operation up to a fixed number of attempts with a fixed
// pause between them. The first success wins; once the attempt budget is
// spent, Execute returns a *RetryExhaustedError carrying only the text of the
// last failure.
type Retry struct {
	mu     sync.Mutex
	policy RetryPolicy
	clock  Clock
}

// NewRetry creates a retry controller with the given policy. Zero-value
// policy fields select the documented defaults at use time.
func NewRetry(policy RetryPolicy, opts ...RetryOption) *Retry {
	r := &Retry{
		policy: policy,
		clock:  systemClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetPolicy replaces the policy wholesale and returns the controller for
// chaining. This is a full replacement, never a merge: a field omitted from
// the new policy falls back to its default, not to its previous value. It
// applies no validation; out-of-range values are corrected at use time.
func (r *Retry) SetPolicy(policy RetryPolicy) *Retry {
	r.mu.Lock()
	r.policy = policy
	r.mu.Unlock()
	return r
}

// Policy returns a snapshot of the current policy as configured, before any
// defaulting or flooring.
func (r *Retry) Policy() RetryPolicy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.policy
}

// Execute runs op up to MaxRetries times, pausing Delay between attempts.
//
// The first attempt that returns a nil error ends the loop immediately; its
// value is returned with no further attempts and no pause. Errors from
// non-final attempts are absorbed silently. When the final attempt fails,
// Execute returns a *RetryExhaustedError that records the attempt count and
// the last failure's text; the failing error value itself is not preserved.
//
// Execute offers no way to abort a pending attempt. The only cancellation
// path is ctx expiring during an inter-attempt pause, in which case ctx.Err()
// is returned; with a background context Execute always runs to a result or
// to exhaustion.
func (r *Retry) Execute(ctx context.Context, op Op) (any, error) {
	maxRetries, delay := r.effective()

	var lastErr error

	for attempt := 1; ; attempt++ {
		value, err := op(ctx)
		if err == nil {
			return value, nil
		}

		lastErr = err

		if attempt >= maxRetries {
			break
		}

		if err := r.clock.Sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, &RetryExhaustedError{Attempts: maxRetries, LastErr: lastErr.Error()}
}

// effective resolves the policy snapshot into usable values: the attempt
// floor of one, and the default delay for the zero value.
func (r *Retry) effective() (maxRetries int, delay time.Duration) {
	r.mu.Lock()
	policy := r.policy
	r.mu.Unlock()

	maxRetries = policy.MaxRetries
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}

	delay = policy.Delay
	if delay == 0 {
		delay = DefaultRetryDelay
	}

	return maxRetries, delay
}
