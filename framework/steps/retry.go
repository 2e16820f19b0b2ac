package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

const (
	// DefaultRetryAttempts is the total number of invocations Retry makes
	// before giving up, when the config does not say otherwise.
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the pause between attempts when the config does
	// not say otherwise.
	DefaultRetryDelay = time.Second
)

// RetryConfig controls the Retry wrapper. Zero values mean the defaults.
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
}

// Retry re-invokes the action on any error, up to the configured number of
// attempts, pausing between attempts. A success on any attempt returns nil
// immediately. After the final attempt fails, the result is a
// *RetryExhaustedError wrapping that attempt's error.
//
// The inter-attempt pause observes ctx: if the case's deadline expires or the
// run is cancelled while Retry is waiting, the loop is abandoned rather than
// outliving its deadline.
func Retry(cfg RetryConfig, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		attempts := cfg.Attempts
		if attempts <= 0 {
			attempts = DefaultRetryAttempts
		}
		delay := cfg.Delay
		if delay <= 0 {
			delay = DefaultRetryDelay
		}

		var lastErr error
		for attempt := 1; attempt <= attempts; attempt++ {
			lastErr = fn(ctx, fx)
			if lastErr == nil {
				return nil
			}
			fx.Logger.Printf("Attempt %d of %d failed: %s", attempt, attempts, lastErr)
			if attempt == attempts {
				break
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry abandoned after attempt %d: %w", attempt, ctx.Err())
			case <-time.After(delay):
			}
		}
		return &RetryExhaustedError{Attempts: attempts, LastErr: lastErr}
	}
}
