package steps

import (
	"context"
	"runtime"
	"time"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// PerformanceConfig controls the Performance wrapper. Thresholds of zero are
// disabled.
type PerformanceConfig struct {
	WarnThreshold  time.Duration
	ErrorThreshold time.Duration
	TrackMemory    bool
}

// Performance measures the action's wall-clock duration (and optionally the
// heap delta across it) and logs it. If the action itself fails, that error
// is returned untouched and the thresholds are not consulted. If the action
// succeeds but exceeded the error threshold, the result is a
// *PerformanceBudgetError; exceeding only the warn threshold logs a warning.
func Performance(cfg PerformanceConfig, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		var before runtime.MemStats
		if cfg.TrackMemory {
			runtime.ReadMemStats(&before)
		}
		start := time.Now()
		err := fn(ctx, fx)
		elapsed := time.Since(start)

		if cfg.TrackMemory {
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			fx.Logger.Printf("Operation took %s (heap delta %+d bytes)",
				elapsed, int64(after.HeapAlloc)-int64(before.HeapAlloc))
		} else {
			fx.Logger.Printf("Operation took %s", elapsed)
		}

		if err != nil {
			return err
		}
		if cfg.ErrorThreshold > 0 && elapsed > cfg.ErrorThreshold {
			return &PerformanceBudgetError{Elapsed: elapsed, Threshold: cfg.ErrorThreshold}
		}
		if cfg.WarnThreshold > 0 && elapsed > cfg.WarnThreshold {
			fx.Logger.Printf("WARNING: operation took %s, over the %s warning threshold",
				elapsed, cfg.WarnThreshold)
		}
		return nil
	}
}
