package scheduler

import (
	"context"
	"log/slog"
	"time"

	"evboard/src-server/page"
	"evboard/src-server/utils"
)

// PageJanitor evicts idle pages every PAGE_SWEEP_INTERVAL until shutdown.
func PageJanitor(as *utils.AppState, registry *page.Registry) {
	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	ticker := time.NewTicker(as.Config.GetPageSweepInterval())
	defer ticker.Stop()
	for {
		select {
		case <-gracefulShutdownCh:
			slog.Debug("page janitor stopped")
			return
		case now := <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), as.Config.GetPageSweepInterval())
			if n := registry.Sweep(ctx, now); n > 0 {
				slog.Info("idle pages evicted", "count", n, "remaining", registry.Len())
			}
			cancel()
		}
	}
}
