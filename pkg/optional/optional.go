// Package optional provides a three-state field for partial-update request
// bodies: absent from the JSON document, explicitly null, or set to a value.
//
// encoding/json only invokes UnmarshalJSON for keys that appear in the
// document, so the zero Optional means "absent" and leaves the stored field
// untouched, while an explicit null (or zero value) clears it.
package optional

import "encoding/json"

// Optional wraps a value that may be absent, null, or set.
type Optional[T any] struct {
	present bool
	valid   bool
	value   T
}

// Of returns an Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{present: true, valid: true, value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true}
}

// Present reports whether the key appeared in the request at all.
func (o Optional[T]) Present() bool {
	return o.present
}

// Get returns the value and whether it is non-null.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		o.valid = false
		var zero T
		o.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present || !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
