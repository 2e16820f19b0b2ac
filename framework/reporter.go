package framework

import "time"

// SpanReporter receives begin/end events for named execution spans. The steps
// package emits exactly one SpanStarted and one SpanFinished per wrapped
// invocation; reporters may render them to the console, a log, or a tracing
// backend.
type SpanReporter interface {
	SpanStarted(name string)
	SpanFinished(name string, elapsed time.Duration, err error)
}

type nullSpanReporter struct{}

func (nullSpanReporter) SpanStarted(string)                        {}
func (nullSpanReporter) SpanFinished(string, time.Duration, error) {}

// NullSpanReporter returns a SpanReporter that ignores all events.
func NullSpanReporter() SpanReporter { return nullSpanReporter{} }

// LogSpanReporter writes span events to a Logger, one line each.
type LogSpanReporter struct {
	Logger Logger
}

func (r LogSpanReporter) SpanStarted(name string) {
	r.Logger.Printf("=== span %q started", name)
}

func (r LogSpanReporter) SpanFinished(name string, elapsed time.Duration, err error) {
	if err != nil {
		r.Logger.Printf("=== span %q failed after %s: %s", name, elapsed, err)
		return
	}
	r.Logger.Printf("=== span %q finished in %s", name, elapsed)
}
