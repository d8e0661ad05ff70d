package flow

import (
	"context"
	"time"
)

// Clock abstracts time measurement and waiting so the flow components can be
// driven by a controlled clock in tests. Production code uses the system
// clock; overriding it is rarely useful outside tests.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time

	// Sleep pauses for d, honoring ctx cancellation. Implementations must
	// treat negative durations as zero.
	Sleep(ctx context.Context, d time.Duration) error
}

// systemClock is the Clock used unless an option injects another.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	return Delay(ctx, d)
}
