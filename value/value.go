package value

import (
	"fmt"
	"unicode/utf8"

	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/poterr"
)

// Mapping is one key/value pair of a Mappings value. Pot preserves
// duplicate keys in document order rather than silently deduplicating —
// callers that care about uniqueness enforce it themselves.
type Mapping struct {
	Key   Value
	Value Value
}

// Named pairs a discriminant symbol with its payload, Pot's representation
// for enum-like variants.
type Named struct {
	Name  string
	Value Value
}

// Value is Pot's dynamic value tree: the decoded shape of any document
// when the caller doesn't decode straight into a concrete Go type.
type Value struct {
	kind     Kind
	b        bool
	integer  atom.Integer
	float    atom.Float
	bytes    []byte
	str      string
	seq      []Value
	mappings []Mapping
	named    *Named
}

// None constructs the None value.
func None() Value { return Value{kind: KindNone} }

// Unit constructs the Unit value.
func Unit() Value { return Value{kind: KindUnit} }

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs an Integer value from an atom.Integer.
func Int(n atom.Integer) Value { return Value{kind: KindInteger, integer: n} }

// FromInt64 constructs a signed Integer value.
func FromInt64(v int64) Value { return Int(atom.FromInt64(v)) }

// FromUint64 constructs an unsigned Integer value.
func FromUint64(v uint64) Value { return Int(atom.FromUint64(v)) }

// Float constructs a Float value from an atom.Float, preserving its f32/f64
// and NaN-payload distinctions.
func Float(f atom.Float) Value { return Value{kind: KindFloat, float: f} }

// Float64 constructs a Float value.
func Float64(v float64) Value { return Float(atom.FromFloat64(v)) }

// Bytes constructs a Bytes value. b is taken by reference, not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// String constructs a String value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Sequence constructs a Sequence value.
func Sequence(items []Value) Value { return Value{kind: KindSequence, seq: items} }

// Mappings constructs a Mappings value, preserving key order (and
// duplicates) as given.
func Mappings(pairs []Mapping) Value { return Value{kind: KindMappings, mappings: pairs} }

// NamedValue constructs a Named value.
func NamedValue(name string, v Value) Value {
	return Value{kind: KindNamed, named: &Named{Name: name, Value: v}}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the Bool payload.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("%w: value is %s, not bool", poterr.ErrUnexpectedKind, v.kind)
	}

	return v.b, nil
}

// AsInteger returns the Integer payload.
func (v Value) AsInteger() (atom.Integer, error) {
	if v.kind != KindInteger {
		return atom.Integer{}, fmt.Errorf("%w: value is %s, not integer", poterr.ErrUnexpectedKind, v.kind)
	}

	return v.integer, nil
}

// AsFloat returns the Float payload.
func (v Value) AsFloat() (atom.Float, error) {
	if v.kind != KindFloat {
		return atom.Float{}, fmt.Errorf("%w: value is %s, not float", poterr.ErrUnexpectedKind, v.kind)
	}

	return v.float, nil
}

// AsBytes returns the raw bytes of a Bytes or String value.
func (v Value) AsBytes() ([]byte, error) {
	switch v.kind {
	case KindBytes:
		return v.bytes, nil
	case KindString:
		return []byte(v.str), nil
	default:
		return nil, fmt.Errorf("%w: value is %s, not bytes", poterr.ErrUnexpectedKind, v.kind)
	}
}

// AsString returns the string form of a String or (UTF-8) Bytes value, the
// same promotion the decoder applies to a Bytes atom when its payload is
// valid UTF-8.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindBytes:
		if !utf8.Valid(v.bytes) {
			return "", fmt.Errorf("%w: bytes value is not valid utf-8", poterr.ErrInvalidUTF8)
		}

		return string(v.bytes), nil
	default:
		return "", fmt.Errorf("%w: value is %s, not string", poterr.ErrUnexpectedKind, v.kind)
	}
}

// AsSequence returns the Sequence payload.
func (v Value) AsSequence() ([]Value, error) {
	if v.kind != KindSequence {
		return nil, fmt.Errorf("%w: value is %s, not sequence", poterr.ErrUnexpectedKind, v.kind)
	}

	return v.seq, nil
}

// AsMappings returns the Mappings payload.
func (v Value) AsMappings() ([]Mapping, error) {
	if v.kind != KindMappings {
		return nil, fmt.Errorf("%w: value is %s, not mappings", poterr.ErrUnexpectedKind, v.kind)
	}

	return v.mappings, nil
}

// AsNamed returns the Named payload.
func (v Value) AsNamed() (*Named, error) {
	if v.kind != KindNamed {
		return nil, fmt.Errorf("%w: value is %s, not named", poterr.ErrUnexpectedKind, v.kind)
	}

	return v.named, nil
}

// Equal reports whether v and other represent the same value. Bytes and
// String compare equal when the bytes side is valid UTF-8 and matches the
// string side byte-for-byte — the same relaxation the decoder's
// Bytes-to-String promotion implies.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return equalAcrossBytesAndString(v, other)
	}

	switch v.kind {
	case KindNone, KindUnit:
		return true
	case KindBool:
		return v.b == other.b
	case KindInteger:
		vHi, vLo := v.integer.Words()
		oHi, oLo := other.integer.Words()

		return vHi == oHi && vLo == oLo && v.integer.IsSigned() == other.integer.IsSigned()
	case KindFloat:
		return v.float.AsFloat64() == other.float.AsFloat64() ||
			(isNaN(v.float.AsFloat64()) && isNaN(other.float.AsFloat64()))
	case KindBytes:
		return string(v.bytes) == string(other.bytes)
	case KindString:
		return v.str == other.str
	case KindSequence:
		return equalSequences(v.seq, other.seq)
	case KindMappings:
		return equalMappings(v.mappings, other.mappings)
	case KindNamed:
		return v.named.Name == other.named.Name && v.named.Value.Equal(other.named.Value)
	default:
		return false
	}
}

func equalAcrossBytesAndString(v, other Value) bool {
	if v.kind == KindString && other.kind == KindBytes {
		return utf8.Valid(other.bytes) && v.str == string(other.bytes)
	}

	if v.kind == KindBytes && other.kind == KindString {
		return utf8.Valid(v.bytes) && other.str == string(v.bytes)
	}

	return false
}

func equalSequences(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

func equalMappings(a, b []Mapping) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Key.Equal(b[i].Key) || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}

	return true
}

func isNaN(f float64) bool { return f != f }
