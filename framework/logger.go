package framework

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const capturedTimestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. Both
// the standard library's log.Logger and CapturingLogger satisfy it.
type Logger interface {
	Println(args ...interface{})
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Println(args ...interface{})                {}
func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one timestamped line of debug output from a test scope.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger records all output from a test scope so that the test runner
// can decide later whether to display it. See btest.(*T).DebugLogger() for the
// rules of logging in parent/child scopes.
type CapturingLogger struct {
	output   []CapturedMessage
	children []*CapturingLogger
	lock     sync.Mutex
}

func (l *CapturingLogger) Println(args ...interface{}) {
	m := strings.TrimRight(fmt.Sprintln(args...), "\r\n") // Sprintln appends a newline
	l.record(CapturedMessage{Time: time.Now(), Message: m})
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.record(CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
}

// record appends the message to this logger's own buffer, unless child loggers
// are attached, in which case the message belongs to whichever child scope is
// currently active and is forwarded instead.
func (l *CapturingLogger) record(m CapturedMessage) {
	var children []*CapturingLogger
	l.lock.Lock()
	if len(l.children) == 0 {
		l.output = append(l.output, m)
	} else {
		children = append([]*CapturingLogger(nil), l.children...)
	}
	l.lock.Unlock()
	for _, c := range children {
		c.record(m)
	}
}

// Output returns a snapshot of everything captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// AddChildLogger attaches a child scope's logger. The child starts out with a
// copy of the parent's output so far; from then on, parent output is routed to
// the child until RemoveChildLogger is called.
func (l *CapturingLogger) AddChildLogger(child *CapturingLogger) {
	l.lock.Lock()
	l.children = append(l.children, child)
	output := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	child.lock.Lock()
	child.output = append(output, child.output...)
	child.lock.Unlock()
}

func (l *CapturingLogger) RemoveChildLogger(child *CapturingLogger) {
	l.lock.Lock()
	for i, c := range l.children {
		if c == child {
			l.children = append(l.children[0:i], l.children[i+1:]...)
			break
		}
	}
	l.lock.Unlock()
}

// ToString renders the captured output one line per message, each prefixed
// with the given string and a timestamp.
func (output CapturedOutput) ToString(prefix string) string {
	lines := make([]string, 0, len(output))
	for _, m := range output {
		lines = append(lines, fmt.Sprintf("%s[%s] %s",
			prefix, m.Time.Format(capturedTimestampFormat), m.Message))
	}
	return strings.Join(lines, "\n")
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

// LoggerWithPrefix decorates a Logger so every message starts with the prefix.
func LoggerWithPrefix(baseLogger Logger, prefix string) Logger {
	return prefixedLogger{baseLogger, prefix}
}

func (p prefixedLogger) Println(args ...interface{}) {
	p.base.Println(append([]interface{}{p.prefix}, args...)...)
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}
