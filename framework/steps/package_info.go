// Package steps provides composable wrappers for the actions a test case
// performs against the browser. Step opens a reporting span around an action;
// the control-flow wrappers (Retry, Timeout, Performance, Screenshot, WaitFor,
// Log) change how an action runs without changing what it returns.
//
// Wrappers compose by ordinary function wrapping, so they can stack in any
// order; each is also usable on its own. Except where a wrapper's contract
// says otherwise (Retry and Performance replace the error), the wrapped
// action's return value and error identity pass through unchanged.
package steps
