package webtests

import (
	"context"
	"fmt"
	"time"

	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/steps"
	"github.com/sitetest/browser-test-harness/framework/suite"
	"github.com/sitetest/browser-test-harness/pages"
)

type loginAttempt struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Succeeds bool   `json:"succeeds" yaml:"succeeds"`
}

func registerLoginTests(s *suite.Suite[*harness.Fixtures]) {
	s.Register(suite.Config{
		Title:      "login succeeds with valid credentials",
		TestCaseID: "AUTH-1",
		Tags:       []string{"auth", "smoke"},
		Timeout:    time.Minute,
		Retries:    1,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		login := pages.NewLoginPage(fx)
		runStep(ctx, t, fx, steps.Step("sign in as demo",
			steps.Screenshot(steps.ScreenshotConfig{Label: "login"},
				func(ctx context.Context, fx *harness.Fixtures) error {
					if err := login.Open(); err != nil {
						return err
					}
					return login.SignIn("demo", "secret123")
				})))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{URL: "**/account"}, noAction))

		greeting, err := login.Greeting()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if greeting != "Welcome, demo" {
			t.Errorf("unexpected greeting %q", greeting)
		}
	})

	s.Register(suite.Config{
		Title:      "signing out returns to the home page",
		TestCaseID: "AUTH-2",
		Tags:       []string{"auth"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		login := pages.NewLoginPage(fx)
		runStep(ctx, t, fx, steps.Step("sign in and out",
			func(ctx context.Context, fx *harness.Fixtures) error {
				if err := login.Open(); err != nil {
					return err
				}
				if err := login.SignIn("demo", "secret123"); err != nil {
					return err
				}
				return login.SignOut()
			}))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: "#welcome"}, noAction))
	})

	attempts := suite.StaticData([]loginAttempt{
		{Username: "demo", Password: "secret123", Succeeds: true},
		{Username: "admin", Password: "hunter2", Succeeds: true},
		{Username: "demo", Password: "wrong", Succeeds: false},
		{Username: "nobody", Password: "irrelevant", Succeeds: false},
	})
	suite.RegisterDataDriven(s, attempts, suite.Config{
		Title:      "login outcome matches credentials",
		TestCaseID: "AUTH-3",
		Tags:       []string{"auth"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures, attempt loginAttempt) {
		login := pages.NewLoginPage(fx)
		runStep(ctx, t, fx, steps.Step(fmt.Sprintf("sign in as %s", attempt.Username),
			steps.Retry(steps.RetryConfig{Attempts: 2, Delay: 500 * time.Millisecond},
				func(ctx context.Context, fx *harness.Fixtures) error {
					if err := login.Open(); err != nil {
						return err
					}
					return login.SignIn(attempt.Username, attempt.Password)
				})))

		if attempt.Succeeds {
			runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{URL: "**/account"}, noAction))
			return
		}
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: ".error-message"}, noAction))
		message, err := login.ErrorMessage()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if message != "Invalid username or password" {
			t.Errorf("unexpected error message %q", message)
		}
	})
}
