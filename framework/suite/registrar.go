package suite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sitetest/browser-test-harness/framework/btest"
)

// DefaultEnvironmentTag is used when a suite is created without an explicit
// environment tag.
const DefaultEnvironmentTag = "development"

// CaseFunc is the body of a registered test. The context carries the case's
// deadline if the registration specified a timeout; fixtures is the per-case
// resource set created by the runner's fixture factory.
type CaseFunc[F any] func(ctx context.Context, t *btest.T, fixtures F)

// DataCaseFunc is the body of a data-driven test, invoked once per data item.
type DataCaseFunc[F any, T any] func(ctx context.Context, t *btest.T, fixtures F, item T)

// FixtureFactory creates the fixture set for one running case. The runner
// calls it once per active case, never for skipped ones; cleanup should be
// scheduled with t.Defer.
type FixtureFactory[F any] func(t *btest.T) F

// RegisteredCase is one concrete runnable test produced by the registration
// layer. Its descriptor fields are immutable once registered.
type RegisteredCase[F any] struct {
	Title       string
	Description string
	Skipped     bool
	SkipReason  string
	Timeout     time.Duration
	Retries     int

	run CaseFunc[F]
}

// Suite accumulates registered cases and runs them under the btest runner.
// The type parameter F is the fixture type handed to each case body.
type Suite[F any] struct {
	environmentTag string
	cases          []RegisteredCase[F]
}

// NewSuite creates an empty suite. The environment tag prefixes every
// composed title; it is resolved once here, not re-read per registration, so
// titles are a pure function of the registration inputs.
func NewSuite[F any](environmentTag string) *Suite[F] {
	if environmentTag == "" {
		environmentTag = DefaultEnvironmentTag
	}
	return &Suite[F]{environmentTag: environmentTag}
}

// EnvironmentTag returns the tag the suite was created with.
func (s *Suite[F]) EnvironmentTag() string {
	return s.environmentTag
}

// Cases returns the cases registered so far, in registration order.
func (s *Suite[F]) Cases() []RegisteredCase[F] {
	return append([]RegisteredCase[F](nil), s.cases...)
}

// Register adds one test case. If the config's skip condition evaluates true
// now, the case is registered as skipped and fn will never be invoked.
//
// A malformed registration (nil function, empty title, negative retries or
// timeout) panics with a *RegistrationError, halting test collection.
func (s *Suite[F]) Register(cfg Config, fn CaseFunc[F]) {
	s.validate(cfg, fn == nil)

	c := RegisteredCase[F]{
		Title:       s.composeTitle(cfg, ""),
		Description: cfg.Description,
		Timeout:     cfg.Timeout,
		Retries:     cfg.Retries,
		run:         fn,
	}
	if skip, reason := cfg.Skip.evaluate(); skip {
		c.Skipped = true
		c.SkipReason = reason
		c.run = nil
	}
	s.cases = append(s.cases, c)
}

// RegisterDataDriven adds one test case per item in the data set, in the data
// set's iteration order. The data set is resolved exactly once, here. Each
// case's title embeds its position as (i+1)/n plus a truncated rendering of
// the item, and each case is independently skippable via the data set's
// per-item predicate or the config's skip condition.
//
// An empty data set registers zero cases; that is not an error.
func RegisterDataDriven[F any, T any](s *Suite[F], data Data[T], cfg Config, fn DataCaseFunc[F, T]) {
	s.validate(cfg, fn == nil)

	items, err := data.resolve()
	if err != nil {
		panic(registrationErrorf("resolving data set for %q: %s", cfg.Title, err))
	}

	configSkip, configReason := cfg.Skip.evaluate()

	n := len(items)
	for i, item := range items {
		item := item
		c := RegisteredCase[F]{
			Title:       s.composeTitle(cfg, fmt.Sprintf(" (%d/%d): %s", i+1, n, renderItem(item))),
			Description: cfg.Description,
			Timeout:     cfg.Timeout,
			Retries:     cfg.Retries,
		}
		skip, reason := configSkip, configReason
		if !skip && data.skipItem != nil && data.skipItem(item) {
			skip, reason = true, data.skipReason
		}
		if skip {
			c.Skipped = true
			c.SkipReason = reason
		} else {
			c.run = func(ctx context.Context, t *btest.T, fixtures F) {
				fn(ctx, t, fixtures, item)
			}
		}
		s.cases = append(s.cases, c)
	}
}

func (s *Suite[F]) validate(cfg Config, fnIsNil bool) {
	if fnIsNil {
		panic(registrationErrorf("nil test function for %q", cfg.Title))
	}
	if strings.TrimSpace(cfg.Title) == "" {
		panic(registrationErrorf("test registered without a title"))
	}
	if cfg.Retries < 0 {
		panic(registrationErrorf("negative retry count for %q", cfg.Title))
	}
	if cfg.Timeout < 0 {
		panic(registrationErrorf("negative timeout for %q", cfg.Title))
	}
}

// composeTitle builds the full case title:
//
//	<environment tag>: <test case ID - ><title><data suffix>< [tags]>
//
// Absent components are omitted entirely. Identical inputs always produce
// identical titles.
func (s *Suite[F]) composeTitle(cfg Config, dataSuffix string) string {
	var b strings.Builder
	b.WriteString(s.environmentTag)
	b.WriteString(": ")
	if cfg.TestCaseID != "" {
		b.WriteString(cfg.TestCaseID)
		b.WriteString(" - ")
	}
	b.WriteString(cfg.Title)
	b.WriteString(dataSuffix)
	if len(cfg.Tags) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(cfg.Tags, ", "))
		b.WriteString("]")
	}
	return b.String()
}

// Run executes every registered case as a subtest of t, in registration
// order. Skipped cases are reported as skipped without creating fixtures or
// invoking anything. Active cases get a fresh fixture set and a context that
// carries the case's timeout, if any; the runner re-attempts failed cases up
// to the case's retry budget.
//
// Whether cases run sequentially or concurrently is the runner's concern;
// nothing here is shared between cases except the suite itself, which is
// read-only by the time Run is called.
func (s *Suite[F]) Run(t *btest.T, newFixtures FixtureFactory[F]) {
	for _, c := range s.cases {
		c := c
		if c.Skipped {
			t.Run(c.Title, func(t *btest.T) {
				t.SkipWithReason(c.SkipReason)
			})
			continue
		}
		t.RunWithConfig(c.Title, btest.ScopeConfig{Retries: c.Retries}, func(t *btest.T) {
			ctx := context.Background()
			if c.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, c.Timeout)
				defer cancel()
			}
			fixtures := newFixtures(t)
			c.run(ctx, t, fixtures)
		})
	}
}
