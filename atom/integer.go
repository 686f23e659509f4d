package atom

import (
	"fmt"

	"github.com/khonsulabs/pot/poterr"
)

// validWidths lists the byte widths Pot permits for Int/UInt payloads.
// Widths 5 and 7 are deliberately absent.
var validWidths = [...]int{1, 2, 3, 4, 6, 8, 16}

func isValidWidth(n int) bool {
	for _, w := range validWidths {
		if w == n {
			return true
		}
	}

	return false
}

// Integer is the widening integer type used at the atom codec's API
// boundary. It stores a signed-or-unsigned 128-bit value as a pair of
// 64-bit words plus a signedness flag (not the primitive width that
// produced it); the as-conversions check the value itself and fail with
// ErrImpreciseCast instead of silently truncating.
type Integer struct {
	hi, lo uint64
	signed bool
}

// FromInt64 builds an Integer from a signed 64-bit value.
func FromInt64(v int64) Integer {
	var hi uint64
	if v < 0 {
		hi = ^uint64(0)
	}

	return Integer{hi: hi, lo: uint64(v), signed: true} //nolint:gosec
}

// FromUint64 builds an Integer from an unsigned 64-bit value.
func FromUint64(v uint64) Integer {
	return Integer{lo: v, signed: false}
}

// FromInt128 builds a signed Integer from its two's-complement high/low
// 64-bit words.
func FromInt128(hi, lo uint64) Integer {
	return Integer{hi: hi, lo: lo, signed: true}
}

// FromUint128 builds an unsigned Integer from its high/low 64-bit words.
func FromUint128(hi, lo uint64) Integer {
	return Integer{hi: hi, lo: lo, signed: false}
}

// IsSigned reports whether the value was produced from a signed width.
func (n Integer) IsSigned() bool { return n.signed }

// Words returns the value's two's-complement high/low 64-bit words.
func (n Integer) Words() (hi, lo uint64) { return n.hi, n.lo }

// IsNegative reports whether the value is negative. Always false for
// unsigned integers.
func (n Integer) IsNegative() bool {
	return n.signed && n.hi>>63 == 1
}

// AsInt64 returns n as an int64, failing if the value does not fit.
func (n Integer) AsInt64() (int64, error) {
	if n.signed {
		if n.IsNegative() {
			if n.hi != ^uint64(0) {
				return 0, fmt.Errorf("%w: value too small for int64", poterr.ErrImpreciseCast)
			}
		} else if n.hi != 0 {
			return 0, fmt.Errorf("%w: value too large for int64", poterr.ErrImpreciseCast)
		}

		return int64(n.lo), nil //nolint:gosec
	}

	if n.hi != 0 || n.lo > uint64(1)<<63-1 {
		return 0, fmt.Errorf("%w: value too large for int64", poterr.ErrImpreciseCast)
	}

	return int64(n.lo), nil //nolint:gosec
}

// AsUint64 returns n as a uint64, failing if the value does not fit (e.g.
// it is negative, or its magnitude needs the high word).
func (n Integer) AsUint64() (uint64, error) {
	if n.signed && n.IsNegative() {
		return 0, fmt.Errorf("%w: negative value has no unsigned representation", poterr.ErrImpreciseCast)
	}

	if n.hi != 0 {
		return 0, fmt.Errorf("%w: value too large for uint64", poterr.ErrImpreciseCast)
	}

	return n.lo, nil
}

// AsInt32, AsInt16, AsInt8 narrow through AsInt64.
func (n Integer) AsInt32() (int32, error) { return narrow[int32](n.AsInt64()) }
func (n Integer) AsInt16() (int16, error) { return narrow[int16](n.AsInt64()) }
func (n Integer) AsInt8() (int8, error)   { return narrow[int8](n.AsInt64()) }

// AsUint32, AsUint16, AsUint8 narrow through AsUint64.
func (n Integer) AsUint32() (uint32, error) { return narrowU[uint32](n.AsUint64()) }
func (n Integer) AsUint16() (uint16, error) { return narrowU[uint16](n.AsUint64()) }
func (n Integer) AsUint8() (uint8, error)   { return narrowU[uint8](n.AsUint64()) }

func narrow[T ~int8 | ~int16 | ~int32](v int64, err error) (T, error) {
	if err != nil {
		return 0, err
	}

	t := T(v)
	if int64(t) != v {
		return 0, fmt.Errorf("%w: value does not fit target width", poterr.ErrImpreciseCast)
	}

	return t, nil
}

func narrowU[T ~uint8 | ~uint16 | ~uint32](v uint64, err error) (T, error) {
	if err != nil {
		return 0, err
	}

	t := T(v)
	if uint64(t) != v {
		return 0, fmt.Errorf("%w: value does not fit target width", poterr.ErrImpreciseCast)
	}

	return t, nil
}

// MinimalWidth returns the smallest permitted byte width {1,2,3,4,6,8,16}
// that preserves n, in two's-complement for signed values.
func (n Integer) MinimalWidth() int {
	if n.signed {
		// A signed value needs bits+1 for the sign; widen up to the next
		// permitted width.
		var magnitude uint64
		if n.IsNegative() {
			magnitude = ^n.lo // for values fitting in 64 bits, -1 complement is enough signal
		} else {
			magnitude = n.lo
		}

		if n.hi != 0 && n.hi != ^uint64(0) {
			return 16
		}

		bits := bitLen64(magnitude) + 1
		return widthForBits(bits)
	}

	if n.hi != 0 {
		return 16
	}

	return widthForBits(bitLen64(n.lo))
}

func bitLen64(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}

	return n
}

func widthForBits(bits int) int {
	for _, w := range validWidths {
		if bits <= w*8 {
			return w
		}
	}

	return 16
}

// PutBytes writes n's two's-complement representation into buf[:width] in
// little-endian order. buf must have length >= width, and width must be one
// of the permitted widths.
func (n Integer) PutBytes(buf []byte, width int) {
	lo, hi := n.lo, n.hi

	for i := 0; i < width && i < 8; i++ {
		buf[i] = byte(lo >> (8 * i))
	}

	for i := 8; i < width; i++ {
		buf[i] = byte(hi >> (8 * (i - 8)))
	}
}

// ParseInteger reconstructs an Integer from width little-endian bytes,
// sign-extending when signed is true.
func ParseInteger(data []byte, width int, signed bool) (Integer, error) {
	if len(data) < width || !isValidWidth(width) {
		return Integer{}, fmt.Errorf("%w: invalid integer width %d", poterr.ErrInvalidAtomHeader, width)
	}

	var lo, hi uint64

	for i := 0; i < width && i < 8; i++ {
		lo |= uint64(data[i]) << (8 * i)
	}

	for i := 8; i < width; i++ {
		hi |= uint64(data[i]) << (8 * (i - 8))
	}

	if signed {
		// Sign-extend from the narrower width into the full 128 bits.
		signBitPos := width*8 - 1
		var negative bool
		if width <= 8 {
			negative = lo&(uint64(1)<<signBitPos) != 0
		} else {
			negative = hi&(uint64(1)<<(signBitPos-64)) != 0
		}

		if negative {
			if width < 8 {
				lo |= ^uint64(0) << (8 * width)
				hi = ^uint64(0)
			} else if width == 8 {
				hi = ^uint64(0)
			} else if width < 16 {
				hi |= ^uint64(0) << (8 * (width - 8))
			}
		}
	}

	return Integer{hi: hi, lo: lo, signed: signed}, nil
}
