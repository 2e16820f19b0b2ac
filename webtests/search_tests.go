package webtests

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/framework/steps"
	"github.com/sitetest/browser-test-harness/framework/suite"
	"github.com/sitetest/browser-test-harness/pages"
)

//go:embed testdata/search_queries.yaml
var searchQueriesYAML []byte

type searchQuery struct {
	Query         string `json:"query" yaml:"query"`
	ExpectedCount int    `json:"expectedCount" yaml:"expectedCount"`
}

// searchQueries is resolved once, at registration time, by LazyData. The file
// is embedded so the suite registers correctly regardless of working
// directory; a malformed file is a registration error.
func searchQueries() []searchQuery {
	var items []searchQuery
	if err := yaml.Unmarshal(searchQueriesYAML, &items); err != nil {
		panic(fmt.Errorf("parsing search_queries.yaml: %w", err))
	}
	return items
}

func registerSearchTests(s *suite.Suite[*harness.Fixtures]) {
	suite.RegisterDataDriven(s, suite.LazyData(searchQueries), suite.Config{
		Title:      "search returns the expected result count",
		TestCaseID: "SRCH-1",
		Tags:       []string{"search"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures, q searchQuery) {
		search := pages.NewSearchPage(fx)
		runStep(ctx, t, fx, steps.Step(fmt.Sprintf("search for %q", q.Query),
			steps.Log(steps.LogConfig{Name: "search"},
				func(ctx context.Context, fx *harness.Fixtures) error {
					if err := search.Open(); err != nil {
						return err
					}
					return search.SearchFor(q.Query)
				})))
		runStep(ctx, t, fx, steps.WaitFor(steps.WaitForConfig{Selector: "#result-count"}, noAction))

		count, err := search.ResultCount()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if count != q.ExpectedCount {
			t.Errorf("query %q returned %d results, expected %d", q.Query, count, q.ExpectedCount)
		}
		items, err := search.Results()
		if err != nil {
			t.Errorf("%s", err)
			t.FailNow()
		}
		if len(items) != q.ExpectedCount {
			t.Errorf("query %q listed %d items, expected %d", q.Query, len(items), q.ExpectedCount)
		}
	})

	s.Register(suite.Config{
		Title:      "search responds within its performance budget",
		TestCaseID: "SRCH-2",
		Tags:       []string{"search", "performance"},
		Timeout:    time.Minute,
	}, func(ctx context.Context, t *btest.T, fx *harness.Fixtures) {
		search := pages.NewSearchPage(fx)
		runStep(ctx, t, fx, steps.Step("timed search",
			steps.Performance(steps.PerformanceConfig{
				WarnThreshold:  2 * time.Second,
				ErrorThreshold: 15 * time.Second,
				TrackMemory:    true,
			}, func(ctx context.Context, fx *harness.Fixtures) error {
				if err := search.Open(); err != nil {
					return err
				}
				return search.SearchFor("mug")
			})))
	})
}
