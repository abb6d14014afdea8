package printer

import (
	"context"
	"time"
)

// Sleeper pauses between submissions
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// ClockSleeper blocks on the wall clock
type ClockSleeper struct{}

// Sleep blocks for d or until ctx is done
func (ClockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
