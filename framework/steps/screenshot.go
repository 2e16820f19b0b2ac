package steps

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/opt"
)

// ScreenshotConfig controls the Screenshot wrapper. OnError and OnSuccess
// default to true; the before/after captures are opt-in.
type ScreenshotConfig struct {
	OnError         opt.Maybe[bool]
	OnSuccess       opt.Maybe[bool]
	BeforeExecution bool
	AfterExecution  bool

	// Label distinguishes this wrapper's captures in file names. Defaults
	// to "step".
	Label string
}

// Screenshot captures full-page screenshots at the configured points around
// the action. The action's error always passes through unchanged; a failed
// capture is logged and never masks, or substitutes for, the action's own
// outcome. Without an artifact store the wrapper is a pass-through.
func Screenshot(cfg ScreenshotConfig, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		label := cfg.Label
		if label == "" {
			label = "step"
		}
		if cfg.BeforeExecution {
			capture(fx, label+"-before")
		}
		err := fn(ctx, fx)
		if cfg.AfterExecution {
			capture(fx, label+"-after")
		}
		if err != nil {
			if cfg.OnError.OrElse(true) {
				capture(fx, label+"-error")
			}
			return err
		}
		if cfg.OnSuccess.OrElse(true) {
			capture(fx, label+"-success")
		}
		return nil
	}
}

func capture(fx *harness.Fixtures, label string) {
	if fx.Artifacts == nil || fx.Page == nil {
		return
	}
	path := fx.Artifacts.ScreenshotPath(fx.Scope, label)
	_, err := fx.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		fx.Logger.Printf("Could not capture screenshot %s: %s", path, err)
		return
	}
	fx.Logger.Printf("Captured screenshot %s", path)
}
