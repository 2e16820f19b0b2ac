package harness

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/sitetest/browser-test-harness/framework"
	"github.com/sitetest/browser-test-harness/framework/artifacts"
)

// Fixtures is the resource set handed to each running test case. Every case
// gets its own value with its own browser context, so cases never share
// cookies, storage, or pages.
type Fixtures struct {
	// Page is the case's tab. Most step functions operate on it.
	Page playwright.Page

	// Context is the isolated browser context that owns Page.
	Context playwright.BrowserContext

	// Request issues HTTP calls that share the context's cookies, for
	// seeding state or asserting on APIs without driving the UI.
	Request playwright.APIRequestContext

	// BaseURL is the root of the site under test.
	BaseURL string

	// Logger writes to the current test scope's debug output.
	Logger framework.Logger

	// Reporter receives step start/finish events.
	Reporter framework.SpanReporter

	// Artifacts is the run's artifact store, or nil when captures are
	// disabled.
	Artifacts *artifacts.Store

	// Scope is the full name of the current test, used to label artifacts
	// and step spans.
	Scope string
}

// URL resolves a path against the base URL.
func (f *Fixtures) URL(path string) string {
	return strings.TrimSuffix(f.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
