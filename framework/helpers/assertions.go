package helpers

import (
	"time"
)

// PollUntil calls conditionFn at the given interval until it returns true or
// the timeout elapses, and reports whether it ever returned true. Polling
// happens on the calling goroutine; conditionFn is never invoked concurrently
// with itself.
func PollUntil(conditionFn func() bool, timeout time.Duration, interval time.Duration) bool {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case <-deadline.C:
			return false
		case <-ticker.C:
			if conditionFn() {
				return true
			}
		}
	}
}

// RequireEventually fails the test and terminates it immediately if
// conditionFn does not become true within the timeout. Unlike
// require.Eventually from testify, it polls on the calling goroutine, so
// FailNow is called from the test's own goroutine as our runner requires.
func RequireEventually(
	t TestContext,
	conditionFn func() bool,
	timeout time.Duration,
	interval time.Duration,
	failureMsgFormat string,
	failureMsgArgs ...interface{},
) {
	if PollUntil(conditionFn, timeout, interval) {
		return
	}
	t.Errorf(failureMsgFormat, failureMsgArgs...)
	t.FailNow()
}
