package bridge

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/khonsulabs/pot/value"
)

// MarshalFunc converts a value of a registered type to a value.Value.
type MarshalFunc func(any) (value.Value, error)

// UnmarshalFunc populates target from v. target is a pointer, and its
// pointer type is the type the UnmarshalFunc was registered under.
type UnmarshalFunc func(v value.Value, target any) error

// Registry lets a caller install Marshaler/Unmarshaler behavior for types
// it doesn't own — so can't add MarshalPot/UnmarshalPot methods to —
// without modifying the codec. It mirrors blob's functional-option
// construction: built empty, populated by the caller before use, then
// handed to codec.Config.
type Registry struct {
	mu           sync.RWMutex
	marshalers   map[reflect.Type]MarshalFunc
	unmarshalers map[reflect.Type]UnmarshalFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		marshalers:   make(map[reflect.Type]MarshalFunc),
		unmarshalers: make(map[reflect.Type]UnmarshalFunc),
	}
}

// RegisterMarshaler installs fn as the marshaler for values of type t.
func (r *Registry) RegisterMarshaler(t reflect.Type, fn MarshalFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.marshalers[t] = fn
}

// RegisterUnmarshaler installs fn as the unmarshaler for decode targets of
// type t, which is the pointer type (*T) that Unmarshal receives.
func (r *Registry) RegisterUnmarshaler(t reflect.Type, fn UnmarshalFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unmarshalers[t] = fn
}

// HasUnmarshaler takes a value type t (not a pointer to t) and reports
// whether an UnmarshalFunc is registered for *t, letting a caller decide
// whether to route through
// Unmarshal before committing to decode a value.Value it might not need.
func (r *Registry) HasUnmarshaler(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.unmarshalers[reflect.PointerTo(t)]

	return ok
}

// Marshal converts v to a value.Value using a Marshaler method if v
// implements one, falling back to a registered MarshalFunc for v's type.
// The second return value reports whether either path handled v; false
// means the codec should fall through to reflection.
func (r *Registry) Marshal(v any) (value.Value, bool, error) {
	if m, ok := v.(Marshaler); ok {
		result, err := m.MarshalPot()
		if err != nil {
			return value.Value{}, true, fmt.Errorf("pot: bridge marshal failed: %w", err)
		}

		return result, true, nil
	}

	r.mu.RLock()
	fn, ok := r.marshalers[reflect.TypeOf(v)]
	r.mu.RUnlock()

	if !ok {
		return value.Value{}, false, nil
	}

	result, err := fn(v)
	if err != nil {
		return value.Value{}, true, fmt.Errorf("pot: bridge marshal failed: %w", err)
	}

	return result, true, nil
}

// Unmarshal populates target from v using an Unmarshaler method if target
// implements one, falling back to a registered UnmarshalFunc for target's
// type. The second return value reports whether either path handled
// target.
func (r *Registry) Unmarshal(v value.Value, target any) (bool, error) {
	if u, ok := target.(Unmarshaler); ok {
		if err := u.UnmarshalPot(v); err != nil {
			return true, fmt.Errorf("pot: bridge unmarshal failed: %w", err)
		}

		return true, nil
	}

	r.mu.RLock()
	fn, ok := r.unmarshalers[reflect.TypeOf(target)]
	r.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := fn(v, target); err != nil {
		return true, fmt.Errorf("pot: bridge unmarshal failed: %w", err)
	}

	return true, nil
}
