package flow

import (
	"errors"
	"fmt"
)

// Sentinel errors for flow operations.
var (
	// ErrRetriesExhausted matches, via errors.Is, the terminal error Retry
	// returns once every permitted attempt has failed.
	ErrRetriesExhausted = errors.New("flow: retries exhausted")

	// ErrTimeout is returned by Executor when an operation exceeds its
	// configured time budget.
	ErrTimeout = errors.New("flow: operation timed out")
)

// RetryExhaustedError is the terminal error returned by Retry.Execute after
// the final permitted attempt fails. It records how many times the operation
// ran and the text of the last failure; the original error value is not
// preserved, only its description.
type RetryExhaustedError struct {
	// Attempts is the number of times the operation was invoked.
	Attempts int

	// LastErr is the textual description of the final failure.
	LastErr string
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("flow: all %d attempts failed, last error: %s", e.Attempts, e.LastErr)
}

// Is reports whether target is ErrRetriesExhausted, letting callers test for
// exhaustion with errors.Is without naming the concrete type.
func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetriesExhausted
}
