package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// DefaultWaitTimeout bounds a WaitFor condition when the config does not say
// otherwise.
const DefaultWaitTimeout = 30 * time.Second

// WaitForConfig controls the WaitFor wrapper. At least one of Selector and
// URL should be set; when both are, the URL condition is checked first.
type WaitForConfig struct {
	// Selector names the element to wait for.
	Selector string

	// State is the state the element must reach: visible (the default),
	// hidden, attached, or detached.
	State string

	// Timeout bounds each wait condition. Defaults to DefaultWaitTimeout.
	Timeout time.Duration

	// URL is a glob pattern the page URL must match.
	URL string
}

// WaitFor blocks until the configured conditions hold, then runs the action.
// A wait failure (usually a timeout) is returned as-is, without retrying and
// without invoking the action.
func WaitFor(cfg WaitForConfig, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultWaitTimeout
		}
		timeoutMs := playwright.Float(float64(timeout.Milliseconds()))

		if cfg.URL != "" {
			err := fx.Page.WaitForURL(cfg.URL, playwright.PageWaitForURLOptions{Timeout: timeoutMs})
			if err != nil {
				return fmt.Errorf("waiting for URL %q: %w", cfg.URL, err)
			}
		}
		if cfg.Selector != "" {
			state, err := selectorState(cfg.State)
			if err != nil {
				return err
			}
			err = fx.Page.Locator(cfg.Selector).WaitFor(playwright.LocatorWaitForOptions{
				State:   state,
				Timeout: timeoutMs,
			})
			if err != nil {
				return fmt.Errorf("waiting for %q to become %s: %w",
					cfg.Selector, string(*state), err)
			}
		}
		return fn(ctx, fx)
	}
}

func selectorState(name string) (*playwright.WaitForSelectorState, error) {
	switch name {
	case "", "visible":
		return playwright.WaitForSelectorStateVisible, nil
	case "hidden":
		return playwright.WaitForSelectorStateHidden, nil
	case "attached":
		return playwright.WaitForSelectorStateAttached, nil
	case "detached":
		return playwright.WaitForSelectorStateDetached, nil
	}
	return nil, fmt.Errorf("unsupported wait state %q", name)
}
