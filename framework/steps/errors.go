package steps

import (
	"fmt"
	"time"
)

// InvocationError wraps a panic that escaped a step body, so a panicking page
// object fails its own test instead of tearing down the whole run. Ordinary
// error returns from step bodies are never wrapped.
type InvocationError struct {
	Step  string
	Cause error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("step %q panicked: %s", e.Step, e.Cause)
}

func (e *InvocationError) Unwrap() error { return e.Cause }

// RetryExhaustedError is returned by Retry after every attempt has failed. It
// carries the attempt count and wraps the final attempt's error.
type RetryExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %s", e.Attempts, e.LastErr)
}

func (e *RetryExhaustedError) Unwrap() error { return e.LastErr }

// PerformanceBudgetError is returned by Performance when the wrapped action
// succeeded but took longer than its error threshold. Unlike other step
// failures, the underlying operation did complete.
type PerformanceBudgetError struct {
	Elapsed   time.Duration
	Threshold time.Duration
}

func (e *PerformanceBudgetError) Error() string {
	return fmt.Sprintf("operation succeeded but took %s, exceeding the %s budget", e.Elapsed, e.Threshold)
}
