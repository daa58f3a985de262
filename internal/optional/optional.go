// Package optional models upstream JSON fields that may be missing or null.
package optional

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Value holds a T that may be absent. Absent covers both a missing key and
// an explicit null.
type Value[T any] struct {
	val T
	set bool
}

// Some wraps a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{val: v, set: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the value and whether it was present.
func (v Value[T]) Get() (T, bool) {
	return v.val, v.set
}

// IsSet reports presence.
func (v Value[T]) IsSet() bool {
	return v.set
}

// OrElse returns the value when present, fallback otherwise.
func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.val
	}
	return fallback
}

// Map applies fn to a present value.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if !v.set {
		return None[U]()
	}
	return Some(fn(v.val))
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value[T]{}
		return nil
	}

	var direct T
	if err := json.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	*v = Some(direct)
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.val)
}
