// Package framework contains the low-level infrastructure of the browser test
// harness that is independent of any particular web application under test.
// The base package contains shared types such as Logger and SpanReporter;
// other components are in the subpackages btest, suite, steps, harness, and
// artifacts.
//
// The general model is:
//
// 1. The harness owns a single browser session (via Playwright) and hands each
// running test an isolated fixture set: a fresh browser context, a page, and an
// API request context.
//
// 2. Test cases are not written as Go tests; they are registered declaratively
// with the suite package and executed by the btest runner, which is similar to
// Go's testing package but runs as regular application code with richer
// configuration, logging, and result reporting.
//
// 3. The application-specific code (page objects and the registered test
// bodies) lives on top of this infrastructure and never talks to Playwright
// lifecycle management directly.
package framework
