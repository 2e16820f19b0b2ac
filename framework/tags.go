package framework

// Tags is a list of strings used to label tests and test runs, such as "smoke"
// or "auth". The meanings of the strings are defined by the test suite.
type Tags []string

// Has returns true if the specified string appears in the list.
func (ts Tags) Has(name string) bool {
	for _, t := range ts {
		if t == name {
			return true
		}
	}
	return false
}

// HasAny returns true if any of the specified strings appear in the list.
func (ts Tags) HasAny(names ...string) bool {
	for _, n := range names {
		if ts.Has(n) {
			return true
		}
	}
	return false
}
