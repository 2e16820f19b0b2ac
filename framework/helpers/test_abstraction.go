package helpers

import "fmt"

// TestContext is a minimal interface for types like *testing.T and *btest.T representing a
// test that can fail. Functions can use this to avoid specific dependencies on those packages.
type TestContext interface {
	Errorf(msgFormat string, msgArgs ...interface{})
	FailNow()
}

// TestRecorder is a TestContext implementation for testing assertion helpers: it records
// failures instead of failing anything.
type TestRecorder struct {
	// Errors is the formatted message from each Errorf call so far.
	Errors []string

	// Terminated is true if FailNow was called.
	Terminated bool

	// PanicOnTerminate causes FailNow to panic, for callers that need to verify that a
	// helper stops executing at that point.
	PanicOnTerminate bool
}

func (t *TestRecorder) Errorf(msgFormat string, msgArgs ...interface{}) {
	t.Errors = append(t.Errors, fmt.Sprintf(msgFormat, msgArgs...))
}

func (t *TestRecorder) FailNow() {
	t.Terminated = true
	if t.PanicOnTerminate {
		panic(t)
	}
}
