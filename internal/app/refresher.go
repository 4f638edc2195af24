package app

import (
	"context"
	"time"

	"github.com/mallworks/mallboard/internal/state"
	"github.com/mallworks/mallboard/pkg/logger"
)

// StartRefresher launches a background goroutine that refreshes every store
// at a fixed cadence. It returns immediately; a non-positive interval
// disables it entirely. The primary consistency mechanism remains
// refetch-after-mutation; this only repairs staleness caused by other
// writers.
func StartRefresher(ctx context.Context, stores *state.Stores, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := stores.RefreshAll(ctx); err != nil {
				log := logger.Get()
				log.Warn().Err(err).Msg("background refresh failed")
			}
		}
	}()
}
