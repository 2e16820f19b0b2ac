package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// SearchPage drives the catalog search form.
type SearchPage struct {
	BasePage
}

func NewSearchPage(fx *harness.Fixtures) *SearchPage {
	return &SearchPage{BasePage{fx: fx, path: "/search"}}
}

// SearchFor submits a query and waits for the results page to render.
func (p *SearchPage) SearchFor(query string) error {
	if err := p.fill("#search-input", query); err != nil {
		return err
	}
	return p.click("#search-submit")
}

// ResultCount returns the number the results page reports.
func (p *SearchPage) ResultCount() (int, error) {
	text, err := p.textOf("#result-count")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("unexpected result count text %q", text)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("unexpected result count text %q", text)
	}
	return count, nil
}

// Results returns the listed result items.
func (p *SearchPage) Results() ([]string, error) {
	items, err := p.fx.Page.Locator("#results .result-item").AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("reading search results: %w", err)
	}
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items, nil
}
