package suite

import "time"

// Config is the declarative description of one test registration. It is
// consumed at registration time; the resulting cases keep a fully-resolved
// copy of everything they need, so mutating a Config after registering with
// it has no effect.
type Config struct {
	// Title is the human-readable name of the test. Required.
	Title string

	// Description is optional explanatory text, carried through to the case
	// for reporting purposes.
	Description string

	// TestCaseID is an optional external identifier (such as a test management
	// system key) that is prefixed to the composed title.
	TestCaseID string

	// Tags label the test for filtering and reporting. They appear at the end
	// of the composed title in registration order.
	Tags []string

	// Timeout, if nonzero, is the deadline applied to the case's execution
	// context by the runner.
	Timeout time.Duration

	// Retries is the number of additional runner-level attempts allowed after
	// a failed first attempt.
	Retries int

	// Skip, if it evaluates true at registration time, registers the case as
	// skipped; the test body is never invoked.
	Skip SkipCondition
}

// Title is shorthand for a Config that sets only the title, for registrations
// that need no other options. Register(Title("x"), fn) behaves identically to
// Register(Config{Title: "x"}, fn).
func Title(title string) Config {
	return Config{Title: title}
}
