package steps

import (
	"context"
	"time"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// Timeout attaches a deadline to the context the action runs under. The
// wrapper itself does not interrupt the action; enforcement belongs to
// whatever observes the context, which includes Retry's inter-attempt pause
// and the test runner's own deadline handling. A non-positive max leaves the
// context untouched.
func Timeout(max time.Duration, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		if max <= 0 {
			return fn(ctx, fx)
		}
		ctx, cancel := context.WithTimeout(ctx, max)
		defer cancel()
		return fn(ctx, fx)
	}
}
