// Package btest contains a test runner framework that is similar to Go's
// testing package, but is run as regular Go application code rather than Go
// tests. It adds richer capabilities for configuration, logging, result
// reporting, and runner-level retries, which the suite package builds its
// declarative registration layer on top of.
package btest
