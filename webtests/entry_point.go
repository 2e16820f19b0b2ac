// Package webtests contains the browser test suites the harness ships with,
// targeting the flows of the demo site (or any deployment that serves the
// same pages): navigation, login, search, and checkout.
package webtests

import (
	"context"

	"github.com/sitetest/browser-test-harness/framework"
	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/steps"
	"github.com/sitetest/browser-test-harness/framework/suite"
)

// RunBrowserTestSuite registers every bundled test suite and executes it
// against the given harness. Registration happens once, here; execution of
// each case gets its own fixtures from the harness.
func RunBrowserTestSuite(
	h *harness.BrowserHarness,
	environmentTag string,
	filters btest.RegexFilters,
	testLogger btest.TestLogger,
) btest.Results {
	s := suite.NewSuite[*harness.Fixtures](environmentTag)
	registerAllSuites(s)

	return btest.Run(btest.TestConfiguration{
		Filter:     filters,
		TestLogger: testLogger,
		Context:    h,
		Tags:       framework.Tags{h.BrowserName(), environmentTag},
	}, func(t *btest.T) {
		s.Run(t, h.NewFixtures)
	})
}

func registerAllSuites(s *suite.Suite[*harness.Fixtures]) {
	registerNavigationTests(s)
	registerLoginTests(s)
	registerSearchTests(s)
	registerCheckoutTests(s)
}

// runStep executes a composed step function and terminates the test on error.
func runStep(ctx context.Context, t *btest.T, fx *harness.Fixtures, fn steps.Func) {
	t.Helper()
	if err := fn(ctx, fx); err != nil {
		t.Errorf("%s", err)
		t.FailNow()
	}
}
