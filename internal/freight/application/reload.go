package application

import (
	"context"
	"time"
)

// RunReloadLoop drives ReloadGraph on a fixed interval until ctx is
// cancelled. It runs one reload immediately, then one per tick — a failed
// reload is logged by ReloadGraph itself and does not stop the loop.
func (e *Engine) RunReloadLoop(ctx context.Context, interval time.Duration) {
	if err := e.ReloadGraph(ctx); err != nil {
		e.logger.Warn("initial graph load failed, starting with empty graph", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = e.ReloadGraph(ctx)
		}
	}
}
