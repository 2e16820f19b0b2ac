package suite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitetest/browser-test-harness/framework/btest"
)

type fakeFixtures struct {
	name string
}

func noFixtures(t *btest.T) *fakeFixtures {
	return &fakeFixtures{name: "fake"}
}

func runSuite(s *Suite[*fakeFixtures]) btest.Results {
	return btest.Run(btest.TestConfiguration{}, func(t *btest.T) {
		s.Run(t, noFixtures)
	})
}

func TestRegisterComposesTitle(t *testing.T) {
	s := NewSuite[*fakeFixtures]("staging")
	s.Register(Config{
		Title:      "login succeeds",
		TestCaseID: "TC-42",
		Tags:       []string{"auth", "smoke"},
	}, func(ctx context.Context, t *btest.T, fx *fakeFixtures) {})

	cases := s.Cases()
	require.Len(t, cases, 1)
	assert.Equal(t, "staging: TC-42 - login succeeds [auth, smoke]", cases[0].Title)
}

func TestRegisterOmitsAbsentTitleComponents(t *testing.T) {
	s := NewSuite[*fakeFixtures]("")
	s.Register(Title("bare"), func(ctx context.Context, t *btest.T, fx *fakeFixtures) {})

	cases := s.Cases()
	require.Len(t, cases, 1)
	assert.Equal(t, "development: bare", cases[0].Title)
}

func TestTitleShorthandEquivalentToConfig(t *testing.T) {
	fn := func(ctx context.Context, t *btest.T, fx *fakeFixtures) {}

	s1 := NewSuite[*fakeFixtures]("qa")
	s1.Register(Title("Z"), fn)
	s2 := NewSuite[*fakeFixtures]("qa")
	s2.Register(Config{Title: "Z"}, fn)

	require.Len(t, s1.Cases(), 1)
	require.Len(t, s2.Cases(), 1)
	assert.Equal(t, s1.Cases()[0].Title, s2.Cases()[0].Title)
	assert.Equal(t, s1.Cases()[0].Skipped, s2.Cases()[0].Skipped)
}

func TestTitleCompositionIsDeterministic(t *testing.T) {
	cfg := Config{Title: "X", TestCaseID: "TC-1", Tags: []string{"a", "b"}}
	fn := func(ctx context.Context, t *btest.T, fx *fakeFixtures) {}

	s1 := NewSuite[*fakeFixtures]("qa")
	s1.Register(cfg, fn)
	s2 := NewSuite[*fakeFixtures]("qa")
	s2.Register(cfg, fn)

	assert.Equal(t, s1.Cases()[0].Title, s2.Cases()[0].Title)
}

func TestRegisteredCaseReceivesFixtures(t *testing.T) {
	var got *fakeFixtures
	s := NewSuite[*fakeFixtures]("qa")
	s.Register(Title("uses fixtures"), func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
		got = fx
	})

	results := runSuite(s)
	assert.True(t, results.OK())
	require.NotNil(t, got)
	assert.Equal(t, "fake", got.name)
}

func TestSkipConditionEvaluatedAtRegistrationTime(t *testing.T) {
	evaluations := 0
	s := NewSuite[*fakeFixtures]("qa")
	bodyRan := false
	s.Register(Config{
		Title: "never runs",
		Skip: SkipWhen(func() bool {
			evaluations++
			return true
		}, "feature disabled"),
	}, func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
		bodyRan = true
	})

	assert.Equal(t, 1, evaluations, "predicate should run once, during registration")

	cases := s.Cases()
	require.Len(t, cases, 1)
	assert.True(t, cases[0].Skipped)
	assert.Equal(t, "feature disabled", cases[0].SkipReason)

	results := runSuite(s)
	results2 := runSuite(s)
	assert.True(t, results.OK())
	assert.True(t, results2.OK())
	assert.False(t, bodyRan, "skipped case body must never execute")
	assert.Equal(t, 1, evaluations, "predicate must not be re-evaluated per run")
}

func TestSkipIfFalseRegistersActiveCase(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	ran := false
	s.Register(Config{
		Title: "runs",
		Skip:  SkipIf(false, "unused"),
	}, func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
		ran = true
	})

	results := runSuite(s)
	assert.True(t, results.OK())
	assert.True(t, ran)
}

func TestRegisterPanicsOnMalformedConfig(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	fn := func(ctx context.Context, t *btest.T, fx *fakeFixtures) {}

	assert.PanicsWithError(t, `test registration: nil test function for "x"`, func() {
		s.Register(Title("x"), nil)
	})
	assert.Panics(t, func() {
		s.Register(Config{}, fn)
	})
	assert.Panics(t, func() {
		s.Register(Config{Title: "x", Retries: -1}, fn)
	})
	assert.Panics(t, func() {
		s.Register(Config{Title: "x", Timeout: -time.Second}, fn)
	})
}

func TestTimeoutAppliesDeadlineToCaseContext(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	var hadDeadline bool
	s.Register(Config{Title: "with timeout", Timeout: time.Minute},
		func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
			_, hadDeadline = ctx.Deadline()
		})
	var hadDeadline2 bool
	s.Register(Title("without timeout"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
			_, hadDeadline2 = ctx.Deadline()
		})

	results := runSuite(s)
	assert.True(t, results.OK())
	assert.True(t, hadDeadline)
	assert.False(t, hadDeadline2)
}

func TestRetriesHandedToRunner(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	attempts := 0
	s.Register(Config{Title: "flaky", Retries: 2},
		func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
			attempts++
			if attempts < 2 {
				t.Errorf("transient failure")
			}
		})

	results := runSuite(s)
	assert.True(t, results.OK())
	assert.Equal(t, 2, attempts)
}

func TestCasesRunInRegistrationOrder(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		s.Register(Title(name), func(ctx context.Context, t *btest.T, fx *fakeFixtures) {
			order = append(order, name)
		})
	}

	results := runSuite(s)
	assert.True(t, results.OK())
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestFixtureFactoryNotCalledForSkippedCases(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	s.Register(Config{Title: "skipped", Skip: SkipAlways("not today")},
		func(ctx context.Context, t *btest.T, fx *fakeFixtures) {})

	factoryCalls := 0
	results := btest.Run(btest.TestConfiguration{}, func(t *btest.T) {
		s.Run(t, func(t *btest.T) *fakeFixtures {
			factoryCalls++
			return &fakeFixtures{}
		})
	})
	assert.True(t, results.OK())
	assert.Zero(t, factoryCalls)
}
