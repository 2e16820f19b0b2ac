package btest

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/sitetest/browser-test-harness/framework"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a test scope. It is very similar to Go's testing.T type.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	nonCritical string
	failed      bool
	skipped     bool
	skipReason  string
	cleanups    []func()
	errors      []error
	helperFns   []string
}

// TestConfiguration contains options for the entire test run.
type TestConfiguration struct {
	// Filter is an optional rule for determining which tests to run based on their names.
	Filter Filter

	// TestLogger receives status information about each test.
	TestLogger TestLogger

	// Context is an optional value of any type defined by the application which can be
	// accessed from tests.
	Context interface{}

	// Tags is a list of strings describing the current run (browser name, environment,
	// enabled feature areas). Tests can require one with T.RequireTag.
	Tags framework.Tags
}

// ScopeConfig contains per-scope execution options, normally derived from a
// registered case's descriptor.
type ScopeConfig struct {
	// Retries is the number of additional attempts allowed after a failed first
	// attempt. Only the final attempt's result is recorded.
	Retries int
}

// Run starts a top-level test scope.
func Run(
	config TestConfiguration,
	action func(*T),
) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{
		config: config,
	}
	t := &T{env: env}
	result := t.run(action)
	if t.failed && t.nonCritical != "" {
		result.NonCritical = true
		result.Explanation = t.nonCritical
	}
	env.recordResult(result, t.failed)
	return env.results
}

// run executes the scope's action, converting panics and FailNow/Skip escapes
// into a result. Recording the result is the caller's job, so that a retried
// attempt can be discarded.
func (t *T) run(action func(*T)) (result TestResult) {
	result.TestID = t.id
	defer func() {
		if r := recover(); r != nil {
			if t.skipped {
				result.Errors = t.errors
				runCleanups(t.cleanups)
				return
			}
			t.failed = true
			var addError error
			if _, ok := r.(*T); ok {
				if len(t.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				t.errors = append(t.errors, addError)
				t.env.config.TestLogger.TestError(t.id, addError)
			}
		}
		result.Errors = t.errors
		runCleanups(t.cleanups)
	}()

	action(t)
	return result
}

func runCleanups(cleanups []func()) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

func (env *environment) recordResult(result TestResult, failed bool) {
	if failed {
		if result.NonCritical {
			env.results.NonCriticalFailures = append(env.results.NonCriticalFailures, result)
		} else {
			env.results.Failures = append(env.results.Failures, result)
		}
	}
	env.results.Tests = append(env.results.Tests, result)
}

// ID returns the full name of the current test.
func (t *T) ID() TestID {
	return t.id
}

// Run runs a subtest in its own scope.
//
// This is equivalent to Go's testing.T.Run.
func (t *T) Run(name string, action func(*T)) {
	t.RunWithConfig(name, ScopeConfig{}, action)
}

// RunWithConfig runs a subtest in its own scope with per-scope execution
// options. If the scope fails and retries remain, the failed attempt's result
// is discarded and the scope runs again from scratch; only the final attempt
// is recorded.
func (t *T) RunWithConfig(name string, cfg ScopeConfig, action func(*T)) {
	id := t.id.Plus(name)

	t.env.config.TestLogger.TestStarted(id)
	if t.env.config.Filter != nil && !t.env.config.Filter.Match(id) {
		t.env.config.TestLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}

	for attempt := 0; ; attempt++ {
		c := &T{
			id:  id,
			env: t.env,
		}
		t.debugLogger.AddChildLogger(&c.debugLogger) // see comments on t.DebugLogger()
		result := c.run(action)
		t.debugLogger.RemoveChildLogger(&c.debugLogger)

		if c.skipped {
			t.env.config.TestLogger.TestSkipped(id, c.skipReason)
			return
		}
		if c.failed && attempt < cfg.Retries {
			t.Debug("test [%s] failed on attempt %d of %d, retrying", id, attempt+1, cfg.Retries+1)
			continue
		}
		if c.failed && c.nonCritical != "" {
			result.NonCritical = true
			result.Explanation = c.nonCritical
		}
		t.env.recordResult(result, c.failed)
		t.env.config.TestLogger.TestFinished(id, result, c.debugLogger.Output())
		return
	}
}

// NonCritical indicates that if this test fails, we would like to know about it but we're
// willing to live with it. It will be shown in the output as a non-critical failure,
// accompanied by the explanation that is specified here. Non-critical failures do not cause
// the harness to return a non-zero exit code on termination, as regular failures do.
func (t *T) NonCritical(explanation string) {
	t.nonCritical = explanation
}

// Errorf reports a test failure. It is equivalent to Go's testing.T.Errorf. It does not cause
// the test to terminate, but adds the failure message to the output and marks the test as
// failed.
//
// You will rarely use this method directly; it is part of this type's implementation of the
// base interfaces testing.T and assert.TestingT, allowing it to be called from assertion
// helpers.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)

	stacktrace := getStacktrace(false, t.helperFns)
	err = transformError(err, stacktrace)

	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow causes the test to immediately terminate and be marked as failed.
//
// You will rarely use this method directly; it is part of this type's implementation of the
// base interfaces testing.T and assert.TestingT, allowing it to be called from assertion
// helpers.
func (t *T) FailNow() {
	panic(t)
}

// Skip causes the test to immediately terminate and be marked as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is equivalent to Skip but provides a message.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Debug writes a message to the output for this test scope.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger instance for writing output for this test scope.
//
// The output that is captured for a test will be passed to TestLogger.TestFinished at the
// end of the test. The test runner can choose whether to display this or not based on
// command-line options.
//
// When a test has subtests (created with t.Run), the logger for a subtest starts out with a
// copy of any output that was already logged for the parent test. During the lifetime of the
// subtest, any further output that is sent to the parent test's logger will go to the child
// test's logger instead. This is useful when the parent test scope manages an object such as
// a shared browser session that is reused by many subtests.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Defer schedules a cleanup function which is guaranteed to be called when this test scope
// exits for any reason. Unlike a Go defer statement, Defer can be used from within helper
// functions.
func (t *T) Defer(cleanupFn func()) {
	t.cleanups = append(t.cleanups, cleanupFn)
}

// Context returns the application-defined context value, if any, that was specified in the
// TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

// Tags returns the tags describing the current test run.
func (t *T) Tags() framework.Tags {
	return append(framework.Tags(nil), t.env.config.Tags...)
}

// RequireTag causes the test to be skipped if the run was not configured with the tag.
func (t *T) RequireTag(name string) {
	if !t.Tags().Has(name) {
		t.SkipWithReason(fmt.Sprintf("test run does not have tag %q", name))
	}
}

// Helper marks the function that calls it as a test helper that shouldn't appear in
// stacktraces. Equivalent to Go's testing.T.Helper().
func (t *T) Helper() {
	pc, _, _, ok := runtime.Caller(1) // 0 is Helper() itself, 1 is who called it
	if !ok {
		return
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return
	}
	t.helperFns = append(t.helperFns, f.Name())
}
