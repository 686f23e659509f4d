package atom

import (
	"fmt"
	"io"

	"github.com/khonsulabs/pot/poterr"
)

// inlineArgMax is the largest arg value that fits in the 4 inline bits of
// the header byte without an extension continuation.
const inlineArgMax = 0x0F

const extensionFlag = 0x10

// WriteHeader writes a header byte for kind/arg, followed by an extended
// arg continuation when arg does not fit in the 4 inline bits.
//
// Layout of the header byte, high bit to low bit: 3 bits kind, 1 bit
// extension flag, 4 bits inline arg. When the extension flag is set the
// inline bits are zero and the full arg follows as an unsigned LEB128-style
// continuation (7 data bits per byte, high bit set while more bytes follow,
// little-endian).
func WriteHeader(w io.ByteWriter, kind Kind, arg uint64) error {
	if arg <= inlineArgMax {
		return w.WriteByte(byte(kind)<<5 | byte(arg))
	}

	if err := w.WriteByte(byte(kind)<<5 | extensionFlag); err != nil {
		return err
	}

	return writeVarUint(w, arg)
}

// ReadHeader reads a header byte and any extension continuation, returning
// the atom's kind and arg.
func ReadHeader(r io.ByteReader) (Kind, uint64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}

	kind := Kind(b >> 5)
	if !kind.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", poterr.ErrInvalidKind, b>>5)
	}

	if b&extensionFlag == 0 {
		return kind, uint64(b & inlineArgMax), nil
	}

	arg, err := readVarUint(r)
	if err != nil {
		return 0, 0, err
	}

	return kind, arg, nil
}

// writeVarUint writes v as an unsigned LEB128-style continuation: 7 data
// bits per byte, high bit set while more bytes follow, little-endian.
func writeVarUint(w io.ByteWriter, v uint64) error {
	for v >= 0x80 {
		if err := w.WriteByte(byte(v) | 0x80); err != nil {
			return err
		}
		v >>= 7
	}

	return w.WriteByte(byte(v))
}

// readVarUint is the inverse of writeVarUint.
func readVarUint(r io.ByteReader) (uint64, error) {
	var result uint64

	var shift uint

	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		if shift >= 64 {
			return 0, poterr.ErrInvalidAtomHeader
		}

		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}

		shift += 7
	}
}
