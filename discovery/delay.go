package discovery

import (
	"context"
	"time"
)

// Delayer suspends the calling flow for a duration. The resolver takes its
// backoff delays through this interface so it stays portable across timer
// implementations and tests run without real sleeps.
type Delayer interface {
	// Delay blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Delay(ctx context.Context, d time.Duration) error
}

// TimerDelayer implements Delayer on the runtime timer.
type TimerDelayer struct{}

func (TimerDelayer) Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
