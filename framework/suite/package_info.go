// Package suite is the declarative test registration layer. Test cases are
// described once, at suite-assembly time, with a Config (title, tags, external
// test case ID, timeout, retries, skip condition) and an optional data set;
// the suite expands each registration into one or more concrete runnable
// cases and hands them to the btest runner.
//
// Registration is synchronous and happens exactly once per process, before
// any test executes. Skip conditions and data sets are resolved at
// registration time, never at execution time, so the set of cases and their
// titles are fully determined before the run starts.
package suite
