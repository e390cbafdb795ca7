// Package domain defines the core domain models for fontsession.
package domain

// Presence is the three-way state of an optional document field.
type Presence uint8

const (
	// Absent means the field was not stored at all.
	Absent Presence = iota
	// Present means the field was stored and coerced to a usable value.
	Present
	// Invalid means the field was stored but could not be coerced.
	Invalid
)

// String returns the presence name.
func (p Presence) String() string {
	switch p {
	case Present:
		return "present"
	case Invalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Opt is an optional field read from a stored document.
//
// Absence and a stored zero value are kept apart: "hinting": false is
// Present(false), a missing hinting key is Absent.
type Opt[T any] struct {
	presence Presence
	value    T
}

// Some returns a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{presence: Present, value: v}
}

// None returns an absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Bad returns a stored-but-unusable value.
func Bad[T any]() Opt[T] {
	return Opt[T]{presence: Invalid}
}

// Presence reports the field state.
func (o Opt[T]) Presence() Presence {
	return o.presence
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.presence == Present
}

// Or returns the value when present and def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.presence == Present {
		return o.value
	}
	return def
}

// IsAbsent reports whether the field was not stored.
func (o Opt[T]) IsAbsent() bool {
	return o.presence == Absent
}
