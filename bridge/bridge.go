// Package bridge is the escape hatch between arbitrary Go values and Pot's
// dynamic value tree. The codec package's reflect-based traversal handles
// ordinary structs, maps, slices, and primitives on its own; bridge exists
// for the types that want (or need) explicit control — a time type with a
// custom wire representation, a type whose zero value isn't its natural
// default, a third-party type the caller can't add methods to.
package bridge

import "github.com/khonsulabs/pot/value"

// Marshaler is implemented by types that convert themselves to a
// value.Value directly, bypassing reflection.
type Marshaler interface {
	MarshalPot() (value.Value, error)
}

// Unmarshaler is implemented by types that populate themselves from a
// value.Value directly, bypassing reflection.
type Unmarshaler interface {
	UnmarshalPot(value.Value) error
}
