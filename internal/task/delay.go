package task

import (
	"context"
	"time"
)

// Delay blocks for d or until ctx is done.
type Delay func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Delay. Non-positive durations return at once.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
