package timing

import (
	"context"
	"time"
)

// Wait suspends the calling goroutine for d, honoring context cancellation.
// A zero or negative d returns immediately. This is the only intentional
// suspension point in a consultation; being goroutine-local it never blocks
// other sessions.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
