package opt

import (
	"encoding/json"
	"fmt"
)

// Maybe is an optional value of type V that distinguishes "no value" from the
// zero value without resorting to a pointer. The harness uses it for settings
// whose absence means "apply the default", such as a skip reason or an
// on/off switch that defaults to on.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe holding the given value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns a Maybe holding no value.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// FromPtr converts a pointer to a Maybe: Some(*ptr) when ptr is non-nil,
// None otherwise.
func FromPtr[V any](ptr *V) Maybe[V] {
	if ptr != nil {
		return Some[V](*ptr)
	}
	return None[V]()
}

// IsDefined reports whether the Maybe holds a value.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the held value, or the zero value of V when undefined.
func (m Maybe[V]) Value() V { return m.value }

// AsPtr returns a pointer to the held value, or nil when undefined.
func (m Maybe[V]) AsPtr() *V {
	if m.defined {
		return &m.value
	}
	return nil
}

// OrElse returns the held value when defined, or valueIfUndefined otherwise.
func (m Maybe[V]) OrElse(valueIfUndefined V) V {
	if m.defined {
		return m.value
	}
	return valueIfUndefined
}

// String renders the held value with its own String() method if it has one,
// or with fmt's "%v" otherwise. An undefined Maybe renders as "[none]".
func (m Maybe[V]) String() string {
	if m.defined {
		var v interface{}
		v = m.value
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", m.value)
	}
	return "[none]"
}

// MarshalJSON writes the held value's usual JSON representation, or a JSON
// null when undefined.
func (m Maybe[V]) MarshalJSON() ([]byte, error) {
	if m.defined {
		return json.Marshal(m.value)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads a JSON null as None, or any other value as Some of the
// usual unmarshaling of V.
func (m *Maybe[V]) UnmarshalJSON(data []byte) error {
	var temp interface{}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp == nil {
		*m = None[V]()
		return nil
	}
	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*m = Some(value)
	return nil
}
