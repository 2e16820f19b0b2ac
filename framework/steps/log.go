package steps

import (
	"context"
	"time"

	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/opt"
)

// LogConfig controls the Log wrapper.
type LogConfig struct {
	// Level labels the log lines. Defaults to "info". Failures always log
	// at "error" regardless.
	Level string

	// Name identifies the action in the log lines. Defaults to the wrapped
	// function's name.
	Name string

	// LogDuration includes the elapsed time in the exit line. Defaults to
	// true.
	LogDuration opt.Maybe[bool]
}

// Log writes an entry line before the action and an exit line after it,
// including the elapsed duration unless disabled. Errors are logged with the
// duration and returned unchanged.
func Log(cfg LogConfig, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		level := cfg.Level
		if level == "" {
			level = "info"
		}
		name := cfg.Name
		if name == "" {
			name = functionName(fn)
		}
		logDuration := cfg.LogDuration.OrElse(true)

		fx.Logger.Printf("[%s] entering %s", level, name)
		start := time.Now()
		err := fn(ctx, fx)
		elapsed := time.Since(start)

		switch {
		case err != nil && logDuration:
			fx.Logger.Printf("[error] %s failed after %s: %s", name, elapsed, err)
		case err != nil:
			fx.Logger.Printf("[error] %s failed: %s", name, err)
		case logDuration:
			fx.Logger.Printf("[%s] %s completed in %s", level, name, elapsed)
		default:
			fx.Logger.Printf("[%s] %s completed", level, name)
		}
		return err
	}
}
