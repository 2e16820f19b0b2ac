package webtests

import (
	"context"
	"strings"
	"time"

	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/opt"
	"github.com/sitetest/browser-test-harness/framework/steps"
	"github.com/sitetest/browser-test-harness/framework/suite"
	"github.com/sitetest/browser-test-harness/pages"
)

func registerCheckoutTests(s *suite.Suite[*harness.Fixtures]) {
	s.Register(suite.Config{
		Title:      "placing an order shows a confirmation",
		TestCaseID: "CHK-1",
		Tags:       []string{"checkout", "smoke"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		checkout := pages.NewCheckoutPage(fx)
		runStep(ctx, t, fx, steps.Step("place an order",
			steps.Screenshot(steps.ScreenshotConfig{Label: "checkout", AfterExecution: true},
				func(ctx context.Context, fx *harness.Fixtures) error {
					if err := checkout.Open(); err != nil {
						return err
					}
					return checkout.PlaceOrder("Ceramic coffee mug", 2)
				})))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: "#order-confirmation"}, noAction))

		confirmation, err := checkout.Confirmation()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if !strings.HasPrefix(confirmation, "Order #") {
			t.Errorf("unexpected confirmation %q", confirmation)
		}
		summary, err := checkout.OrderSummary()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if summary != "2 x Ceramic coffee mug" {
			t.Errorf("unexpected order summary %q", summary)
		}
	})

	s.Register(suite.Config{
		Title:      "zero quantity is rejected",
		TestCaseID: "CHK-2",
		Tags:       []string{"checkout"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		checkout := pages.NewCheckoutPage(fx)
		runStep(ctx, t, fx, steps.Step("submit an invalid order",
			steps.Screenshot(steps.ScreenshotConfig{Label: "invalid-order", OnSuccess: opt.Some(false)},
				func(ctx context.Context, fx *harness.Fixtures) error {
					if err := checkout.Open(); err != nil {
						return err
					}
					return checkout.PlaceOrder("Ceramic coffee mug", 0)
				})))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: ".error-message"}, noAction))

		message, err := checkout.ErrorMessage()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if message != "Enter an item and a positive quantity" {
			t.Errorf("unexpected error message %q", message)
		}
	})

	s.Register(suite.Config{
		Title:      "checkout against the production catalog",
		TestCaseID: "CHK-3",
		Tags:       []string{"checkout"},
		Timeout:    time.Minute,
		Skip: suite.SkipIf(s.EnvironmentTag() != "production",
			"only runs against the production catalog"),
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		checkout := pages.NewCheckoutPage(fx)
		runStep(ctx, t, fx, steps.Step("place a production order",
			func(ctx context.Context, fx *harness.Fixtures) error {
				if err := checkout.Open(); err != nil {
					return err
				}
				return checkout.PlaceOrder("Stainless steel thermos", 1)
			}))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: "#order-confirmation"}, noAction))
	})
}
