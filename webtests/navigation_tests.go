package webtests

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/steps"
	"github.com/sitetest/browser-test-harness/framework/suite"
)

// noAction lets a bare WaitFor or Screenshot wrapper be used as a step.
func noAction(ctx context.Context, fx *harness.Fixtures) error { return nil }

func openHome(ctx context.Context, fx *harness.Fixtures) error {
	_, err := fx.Page.Goto(fx.URL("/"), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("opening home page: %w", err)
	}
	return nil
}

func registerNavigationTests(s *suite.Suite[*harness.Fixtures]) {
	s.Register(suite.Config{
		Title:      "home page renders",
		TestCaseID: "NAV-1",
		Tags:       []string{"navigation", "smoke"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		runStep(ctx, t, fx, steps.Step("open home page", openHome))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: "#welcome"}, noAction))
	})

	s.Register(suite.Config{
		Title:      "navigation links reach every section",
		TestCaseID: "NAV-2",
		Tags:       []string{"navigation"},
		Timeout:    2 * time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		links := []struct {
			id   string
			path string
		}{
			{"#nav-login", "/login"},
			{"#nav-search", "/search"},
			{"#nav-checkout", "/checkout"},
		}
		for _, link := range links {
			link := link
			runStep(ctx, t, fx, steps.Step(fmt.Sprintf("follow %s", link.id),
				func(ctx context.Context, fx *harness.Fixtures) error {
					if err := openHome(ctx, fx); err != nil {
						return err
					}
					if err := fx.Page.Locator(link.id).Click(); err != nil {
						return fmt.Errorf("clicking %s: %w", link.id, err)
					}
					return nil
				}))
			runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{URL: "**" + link.path}, noAction))
		}
	})

	s.Register(suite.Config{
		Title:      "slow page eventually renders",
		TestCaseID: "NAV-3",
		Tags:       []string{"navigation"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		runStep(ctx, t, fx, steps.Step("open slow page",
			steps.Performance(steps.PerformanceConfig{WarnThreshold: 5 * time.Second},
				func(ctx context.Context, fx *harness.Fixtures) error {
					_, err := fx.Page.Goto(fx.URL("/slow?delay=2s"))
					return err
				})))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: "#slow-content"}, noAction))
	})
}
