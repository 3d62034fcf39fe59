package calculator

import (
	"context"
	"time"

	"keypad-calculator/internal/observability"

	"go.uber.org/zap"
)

// RunSweeper expires idle sessions every interval until ctx is done.
func RunSweeper(ctx context.Context, store *Store, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := store.Sweep(ttl)
			if n == 0 {
				continue
			}

			sessionsGauge.Add(ctx, -int64(n))
			observability.Logger.Info("expired idle calculator sessions",
				zap.Int("expired", n),
				zap.Int("remaining", store.Len()),
				zap.Duration("ttl", ttl),
			)
		}
	}
}
