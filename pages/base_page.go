// Package pages contains the page objects for the site flows the bundled
// test suites exercise. Each page object wraps a Fixtures value and exposes
// the page's interactions as methods; tests compose these methods with the
// step wrappers rather than touching Playwright locators directly.
package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// BasePage holds what every page object needs: the case's fixtures and the
// page's path under the base URL.
type BasePage struct {
	fx   *harness.Fixtures
	path string
}

// Open navigates to the page and waits for the DOM to be ready.
func (p *BasePage) Open() error {
	url := p.fx.URL(p.path)
	_, err := p.fx.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}

// Path returns the page's path under the base URL.
func (p *BasePage) Path() string { return p.path }

// IsCurrent reports whether the browser is currently on this page.
func (p *BasePage) IsCurrent() bool {
	current := p.fx.Page.URL()
	return strings.HasPrefix(strings.TrimPrefix(current, strings.TrimSuffix(p.fx.BaseURL, "/")), p.path)
}

// ErrorMessage returns the text of the page's inline error banner, if shown.
func (p *BasePage) ErrorMessage() (string, error) {
	text, err := p.fx.Page.Locator(".error-message").TextContent()
	if err != nil {
		return "", fmt.Errorf("reading error message: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (p *BasePage) fill(selector, value string) error {
	if err := p.fx.Page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("filling %s: %w", selector, err)
	}
	return nil
}

func (p *BasePage) click(selector string) error {
	if err := p.fx.Page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("clicking %s: %w", selector, err)
	}
	return nil
}

func (p *BasePage) textOf(selector string) (string, error) {
	text, err := p.fx.Page.Locator(selector).TextContent()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}
