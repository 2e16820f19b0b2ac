package harness

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/sitetest/browser-test-harness/framework"
	"github.com/sitetest/browser-test-harness/framework/artifacts"
	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/helpers"
)

const defaultActionTimeout = 30 * time.Second

// BrowserHarness owns the Playwright driver and the single browser process
// that is shared by the whole test run. Tests never use it directly; each
// running case receives a Fixtures value with its own isolated browser
// context and page.
//
// It contains no domain-specific test logic, but only provides a general
// mechanism for test suites to build on.
type BrowserHarness struct {
	pw            *playwright.Playwright
	browser       playwright.Browser
	browserName   string
	headless      bool
	slowMo        time.Duration
	actionTimeout time.Duration
	baseURL       string
	logger        framework.Logger
	reporter      framework.SpanReporter
	store         *artifacts.Store
}

type BrowserHarnessOption helpers.ConfigOption[BrowserHarness]

type harnessOptionBrowserName struct{ name string }

func (o harnessOptionBrowserName) Configure(h *BrowserHarness) error {
	switch o.name {
	case "chromium", "firefox", "webkit":
		h.browserName = o.name
		return nil
	}
	return fmt.Errorf("unsupported browser %q", o.name)
}

// OptionBrowserName selects which browser engine to launch. The default is
// chromium; firefox and webkit are also supported.
func OptionBrowserName(name string) BrowserHarnessOption {
	return harnessOptionBrowserName{name}
}

type harnessOptionHeaded struct{}

func (o harnessOptionHeaded) Configure(h *BrowserHarness) error {
	h.headless = false
	return nil
}

// OptionHeaded launches the browser with a visible window, for local
// debugging. Runs are headless by default.
func OptionHeaded() BrowserHarnessOption {
	return harnessOptionHeaded{}
}

type harnessOptionSlowMo struct{ delay time.Duration }

func (o harnessOptionSlowMo) Configure(h *BrowserHarness) error {
	h.slowMo = o.delay
	return nil
}

// OptionSlowMo inserts a delay between browser operations so a human can
// follow along in headed mode.
func OptionSlowMo(delay time.Duration) BrowserHarnessOption {
	return harnessOptionSlowMo{delay}
}

type harnessOptionActionTimeout struct{ timeout time.Duration }

func (o harnessOptionActionTimeout) Configure(h *BrowserHarness) error {
	if o.timeout <= 0 {
		return fmt.Errorf("action timeout must be positive, got %s", o.timeout)
	}
	h.actionTimeout = o.timeout
	return nil
}

// OptionActionTimeout overrides the default per-action timeout applied to
// every browser context the harness creates.
func OptionActionTimeout(timeout time.Duration) BrowserHarnessOption {
	return harnessOptionActionTimeout{timeout}
}

type harnessOptionArtifacts struct{ store *artifacts.Store }

func (o harnessOptionArtifacts) Configure(h *BrowserHarness) error {
	h.store = o.store
	return nil
}

// OptionArtifacts attaches an artifact store; step wrappers use it for
// screenshot captures.
func OptionArtifacts(store *artifacts.Store) BrowserHarnessOption {
	return harnessOptionArtifacts{store}
}

type harnessOptionSpanReporter struct{ reporter framework.SpanReporter }

func (o harnessOptionSpanReporter) Configure(h *BrowserHarness) error {
	h.reporter = o.reporter
	return nil
}

// OptionSpanReporter attaches a reporter that receives step start/finish
// events from the step wrappers.
func OptionSpanReporter(reporter framework.SpanReporter) BrowserHarnessOption {
	return harnessOptionSpanReporter{reporter}
}

// InstallBrowsers downloads the Playwright driver and browser binaries if
// they are not already present. CI images call this once before running.
func InstallBrowsers(browserName string) error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{browserName},
	})
}

// NewBrowserHarness starts the Playwright driver and launches the browser.
// baseURL is the root of the site under test; every page object resolves its
// paths against it.
func NewBrowserHarness(
	baseURL string,
	debugLogger framework.Logger,
	options ...BrowserHarnessOption,
) (*BrowserHarness, error) {
	if debugLogger == nil {
		debugLogger = framework.NullLogger()
	}

	h := &BrowserHarness{
		browserName:   "chromium",
		headless:      true,
		actionTimeout: defaultActionTimeout,
		baseURL:       baseURL,
		logger:        debugLogger,
		reporter:      framework.NullSpanReporter(),
	}
	if err := helpers.ApplyOptions(h, options...); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright driver: %w", err)
	}
	h.pw = pw

	var browserType playwright.BrowserType
	switch h.browserName {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	launchOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(h.headless),
	}
	if h.slowMo > 0 {
		launchOptions.SlowMo = playwright.Float(float64(h.slowMo.Milliseconds()))
	}
	browser, err := browserType.Launch(launchOptions)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", h.browserName, err)
	}
	h.browser = browser

	h.logger.Printf("Launched %s (headless=%t) against %s", h.browserName, h.headless, baseURL)
	return h, nil
}

// BaseURL returns the root URL of the site under test.
func (h *BrowserHarness) BaseURL() string { return h.baseURL }

// BrowserName returns the name of the launched browser engine.
func (h *BrowserHarness) BrowserName() string { return h.browserName }

// Artifacts returns the attached artifact store, or nil if none was
// configured.
func (h *BrowserHarness) Artifacts() *artifacts.Store { return h.store }

// Close shuts down the browser and the Playwright driver. It must be called
// once, after all tests have finished.
func (h *BrowserHarness) Close() {
	if h.browser != nil {
		if err := h.browser.Close(); err != nil {
			h.logger.Printf("Error closing browser: %s", err)
		}
	}
	if h.pw != nil {
		if err := h.pw.Stop(); err != nil {
			h.logger.Printf("Error stopping playwright driver: %s", err)
		}
	}
}

// NewFixtures creates the per-case resource set: a fresh isolated browser
// context and page, wired to the current test scope's debug logger. The
// context and page are torn down with t.Defer when the scope exits, however
// it exits. A failure to create them terminates the test immediately.
func (h *BrowserHarness) NewFixtures(t *btest.T) *Fixtures {
	browserContext, err := h.browser.NewContext()
	if err != nil {
		t.Errorf("could not create browser context: %s", err)
		t.FailNow()
	}
	t.Defer(func() {
		_ = browserContext.Close()
	})
	browserContext.SetDefaultTimeout(float64(h.actionTimeout.Milliseconds()))

	page, err := browserContext.NewPage()
	if err != nil {
		t.Errorf("could not create page: %s", err)
		t.FailNow()
	}

	return &Fixtures{
		Page:      page,
		Context:   browserContext,
		Request:   browserContext.Request(),
		BaseURL:   h.baseURL,
		Logger:    t.DebugLogger(),
		Reporter:  h.reporter,
		Artifacts: h.store,
		Scope:     t.ID().String(),
	}
}
