package flow

import "context"

// Op is a unit of work: a caller-supplied operation whose execution is
// mediated by Retry or RateLimiter. An Op reports failure only through its
// returned error; the mediating component never inspects the value.
type Op func(ctx context.Context) (any, error)

// Result carries the settled outcome of an Op submitted through
// RateLimiter.Handle. Exactly one of Value and Err is meaningful.
type Result struct {
	Value any
	Err   error
}
