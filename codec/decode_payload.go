package codec

import (
	"fmt"

	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/poterr"
)

// readInteger reads width bytes and parses them as an Integer, charging the
// budget only when the underlying read wasn't already zero-copy — and
// before the read happens, so a streaming source can never allocate beyond
// the budget before the check trips.
func (d *Decoder) readInteger(width int, signed bool) (atom.Integer, error) {
	if !d.r.Borrowed() {
		if err := d.bgt.charge(uint64(width)); err != nil {
			return atom.Integer{}, err
		}
	}

	bb, err := d.r.BufferedReadBytes(width, &d.scratch)
	if err != nil {
		return atom.Integer{}, err
	}

	return atom.ParseInteger(bb.Data, width, signed)
}

// readFloat reads width bytes and parses them as a Float, charging before
// reading for the same reason as readInteger.
func (d *Decoder) readFloat(width int, arg uint64) (atom.Float, error) {
	if !d.r.Borrowed() {
		if err := d.bgt.charge(uint64(width)); err != nil {
			return atom.Float{}, err
		}
	}

	bb, err := d.r.BufferedReadBytes(width, &d.scratch)
	if err != nil {
		return atom.Float{}, err
	}

	return atom.ParseFloat(bb.Data, arg)
}

// readBytesPayload reads n bytes for a Bytes atom. The returned slice is
// always a fresh copy the caller owns, since both string conversion and
// []byte retention outlive the source's buffer lifetime guarantees; charge
// once for that copy regardless of whether the read itself borrowed, and
// before the underlying read runs — n comes straight off an untrusted atom
// header, so the streaming path must never allocate it before the budget
// has a chance to reject it.
func (d *Decoder) readBytesPayload(n int) ([]byte, error) {
	if err := d.bgt.charge(uint64(n)); err != nil {
		return nil, err
	}

	bb, err := d.r.BufferedReadBytes(n, &d.scratch)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, bb.Data)

	return out, nil
}

func widthFromArg(arg uint64) int {
	return int(arg) + 1
}

func floatWidthFromArg(arg uint64) (int, error) {
	switch arg {
	case atom.Float32Arg:
		return 4, nil
	case atom.Float64Arg:
		return 8, nil
	default:
		return 0, fmt.Errorf("%w: invalid float arg %d", poterr.ErrInvalidAtomHeader, arg)
	}
}
