package atom

import (
	"fmt"
	"math"

	"github.com/khonsulabs/pot/endian"
	"github.com/khonsulabs/pot/poterr"
)

// littleEndian is the byte-order engine every Pot payload uses — the format
// is little-endian throughout, independent of the host's native order.
var littleEndian = endian.GetLittleEndianEngine()

// Float32Arg and Float64Arg are the arg values of a Float atom: 3 for
// binary32, 7 for binary64.
const (
	Float32Arg = 3
	Float64Arg = 7
)

// Float holds either an f32 or an f64 payload, remembering which so decode
// can report ErrImpreciseCast on a lossy narrowing request instead of
// truncating silently.
type Float struct {
	bits   uint64 // f64 bit pattern, or the f32 bit pattern widened via float64(float32(...))
	isF32  bool
	f32bit uint32
}

// FromFloat64 builds a Float from an f64. If v round-trips exactly through
// f32 (AsFloat32 would succeed), the atom codec encodes it as f32;
// FromFloat64 itself always records the full f64 value, leaving the
// narrowing decision to EncodeWidth.
func FromFloat64(v float64) Float {
	return Float{bits: math.Float64bits(v)}
}

// FromFloat32 builds a Float from an f32.
func FromFloat32(v float32) Float {
	return Float{isF32: true, f32bit: math.Float32bits(v), bits: math.Float64bits(float64(v))}
}

// AsFloat64 returns the value as an f64. Always lossless.
func (f Float) AsFloat64() float64 {
	return math.Float64frombits(f.bits)
}

// AsFloat32 returns the value as an f32, failing with ErrImpreciseCast if
// the f64 value does not round-trip exactly through f32.
func (f Float) AsFloat32() (float32, error) {
	if f.isF32 {
		return math.Float32frombits(f.f32bit), nil
	}

	v := f.AsFloat64()
	narrowed := float32(v)

	if float64(narrowed) != v {
		return 0, fmt.Errorf("%w: f64 value does not round-trip through f32", poterr.ErrImpreciseCast)
	}

	return narrowed, nil
}

// EncodeWidth reports which atom arg (Float32Arg or Float64Arg) the encoder
// should use: f32 when the value round-trips exactly through f32 (or was
// already an f32), f64 otherwise. A NaN never compares equal to itself, so
// a NaN built from an f64 always takes the f64 width and keeps its full
// 64-bit payload; NaN payloads are never canonicalized.
func (f Float) EncodeWidth() int {
	if f.isF32 {
		return Float32Arg
	}

	v := f.AsFloat64()
	if float64(float32(v)) == v {
		return Float32Arg
	}

	return Float64Arg
}

// PutBytes writes the little-endian payload for the given arg (3 or 7).
func (f Float) PutBytes(buf []byte, arg int) {
	switch arg {
	case Float32Arg:
		var v float32
		if f.isF32 {
			v = math.Float32frombits(f.f32bit)
		} else {
			v = float32(f.AsFloat64())
		}

		littleEndian.PutUint32(buf, math.Float32bits(v))
	case Float64Arg:
		littleEndian.PutUint64(buf, f.bits)
	}
}

// ParseFloat reconstructs a Float from a little-endian payload for the
// given arg (3 => f32, 7 => f64).
func ParseFloat(data []byte, arg uint64) (Float, error) {
	switch arg {
	case Float32Arg:
		if len(data) < 4 {
			return Float{}, poterr.ErrEOF
		}

		return FromFloat32(math.Float32frombits(littleEndian.Uint32(data))), nil
	case Float64Arg:
		if len(data) < 8 {
			return Float{}, poterr.ErrEOF
		}

		return FromFloat64(math.Float64frombits(littleEndian.Uint64(data))), nil
	default:
		return Float{}, fmt.Errorf("%w: invalid float arg %d", poterr.ErrInvalidAtomHeader, arg)
	}
}
