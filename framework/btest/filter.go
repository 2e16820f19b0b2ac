package btest

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a rule that can determine whether to run a specific test or not.
type Filter interface {
	Match(id TestID) bool
}

// FilterFunc allows a plain function to be used as a Filter.
type FilterFunc func(id TestID) bool

func (f FilterFunc) Match(id TestID) bool { return f(id) }

// SelfDescribingFilter is a Filter that can print an explanation of its
// criteria before a run starts.
type SelfDescribingFilter interface {
	Describe(w io.Writer)
}

// RegexFilters selects tests by matching regex patterns against the components
// of their IDs, in the same way as "go test -run".
type RegexFilters struct {
	MustMatch    TestIDPatternList
	MustNotMatch TestIDPatternList
}

func (r RegexFilters) Match(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id, true)) &&
		!r.MustNotMatch.AnyMatch(id, false)
}

func (r RegexFilters) Describe(w io.Writer) {
	if !r.MustMatch.IsDefined() && !r.MustNotMatch.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
	if r.MustMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any not matching %s\n", r.MustMatch)
	}
	if r.MustNotMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any matching %s\n", r.MustNotMatch)
	}
	fmt.Fprintln(w)
}

// TestIDPattern is a slash-delimited list of regexes, each applied to one
// component of a TestID.
type TestIDPattern []*regexp.Regexp

// Match tests the pattern against each corresponding component of the ID. If
// includeParents is true, an ID that is a parent scope of a fully-matching ID
// also matches, so the runner descends into it.
func (p TestIDPattern) Match(id TestID, includeParents bool) bool {
	n := len(p)
	if n > len(id) {
		if !includeParents {
			return false
		}
		n = len(id)
	}
	for i := 0; i < n; i++ {
		if !p[i].MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p TestIDPattern) String() string {
	ss := make([]string, 0, len(p))
	for _, c := range p {
		ss = append(ss, c.String())
	}
	return strings.Join(ss, "/")
}

// ParseTestIDPattern compiles a slash-delimited pattern string.
func ParseTestIDPattern(s string) (TestIDPattern, error) {
	parts := strings.Split(s, "/")
	ret := make(TestIDPattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		ret = append(ret, rx)
	}
	return ret, nil
}

type TestIDPatternList []TestIDPattern

func (l TestIDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (l *TestIDPatternList) Set(value string) error {
	p, err := ParseTestIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l TestIDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l TestIDPatternList) AnyMatch(id TestID, includeParents bool) bool {
	for _, p := range l {
		if p.Match(id, includeParents) {
			return true
		}
	}
	return false
}
