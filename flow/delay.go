package flow

import (
	"context"
	"time"
)

// Delay pauses the calling goroutine for d, treating negative durations as
// zero. Zero and negative waits resolve as soon as the timer can fire; there
// is no busy-wait.
//
// Delay has no failure mode of its own: with a background context the return
// is always nil. The only non-nil return is ctx.Err() when ctx is cancelled
// before the pause completes.
func Delay(ctx context.Context, d time.Duration) error {
	if d < 0 {
		d = 0
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
