package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// maxRenderedItemLength is the cap on the JSON rendering of a data item inside
// a composed title. Longer renderings are cut at this length and marked with
// truncationMarker.
const maxRenderedItemLength = 48

const truncationMarker = "..."

// Data is the source of items for a data-driven registration: either a static
// slice or a deferred producer. Whichever form it takes, it is resolved
// exactly once, at registration time; producers are never re-invoked.
type Data[T any] struct {
	static     []T
	produce    func() ([]T, error)
	skipItem   func(T) bool
	skipReason string
}

// StaticData wraps an already-materialized slice of items.
func StaticData[T any](items []T) Data[T] {
	return Data[T]{static: items}
}

// LazyData wraps a producer that is called once at registration time, for
// data sets derived from the environment or prior computation.
func LazyData[T any](produce func() []T) Data[T] {
	return Data[T]{produce: func() ([]T, error) { return produce(), nil }}
}

// DataFromYAMLFile reads the items from a YAML file containing a sequence of
// values unmarshalable into T. The file is read once, at registration time;
// a missing or malformed file is a registration error.
func DataFromYAMLFile[T any](path string) Data[T] {
	return Data[T]{produce: func() ([]T, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}
		var items []T
		if err := yaml.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parsing data file %s: %w", path, err)
		}
		return items, nil
	}}
}

// SkipWhen attaches a per-item skip predicate. The predicate is evaluated once
// per item at registration time; items for which it returns true are
// registered as skipped cases rather than active ones.
func (d Data[T]) SkipWhen(predicate func(T) bool, reason string) Data[T] {
	d.skipItem = predicate
	d.skipReason = reason
	return d
}

func (d Data[T]) resolve() ([]T, error) {
	if d.produce != nil {
		return d.produce()
	}
	return d.static, nil
}

// renderItem produces the title fragment for one data item: its JSON
// rendering, cut to maxRenderedItemLength. Items that cannot be marshaled
// (say, a struct containing a channel) fall back to fmt's rendering rather
// than failing the registration.
func renderItem(item interface{}) string {
	var s string
	if b, err := json.Marshal(item); err == nil {
		s = string(b)
	} else {
		s = fmt.Sprintf("%v", item)
	}
	if len(s) > maxRenderedItemLength {
		// json.Marshal leaves non-ASCII text unescaped, so the cut point must
		// not split a multi-byte rune.
		cut := maxRenderedItemLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + truncationMarker
	}
	return s
}
