package btest

import (
	"strings"
)

// Results accumulates the outcome of every test scope executed in one run.
type Results struct {
	Tests               []TestResult
	Failures            []TestResult
	NonCriticalFailures []TestResult
}

// TestResult is the outcome of a single test scope.
type TestResult struct {
	TestID      TestID
	Errors      []error
	NonCritical bool
	Explanation string
}

// OK returns true if there were no critical failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the full name of a test, expressed as the path of scope names
// from the root. Its string form joins the components with slashes.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with one more component appended.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}
