package flow

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock drives the flow components deterministically: Sleep advances the
// fake time instantly instead of blocking, and every requested sleep is
// recorded for later inspection.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
	return nil
}

// Sleeps returns a copy of every duration passed to Sleep so far.
func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

func TestSystemClock_Now(t *testing.T) {
	before := time.Now()
	got := systemClock{}.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestSystemClock_SleepNegative(t *testing.T) {
	start := time.Now()
	if err := (systemClock{}).Sleep(context.Background(), -time.Hour); err != nil {
		t.Errorf("Sleep() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("negative sleep took %v, want immediate return", elapsed)
	}
}
