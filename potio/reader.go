// Package potio provides the byte-source and byte-sink abstractions the
// atom codec reads from and writes through: a zero-copy slice reader, a
// scratch-buffered streaming reader, and the Sink a writer fills.
package potio

import (
	"io"

	"github.com/khonsulabs/pot/poterr"
)

// BufferedBytes is the result of a buffered read: either a view borrowed
// directly from the source (zero-copy), or bytes appended to the caller's
// scratch buffer.
type BufferedBytes struct {
	Data  []byte
	Owned bool // true when Data was copied into the caller's scratch buffer
}

// Reader is the byte-source abstraction atom decoding reads through. It has
// two implementations: SliceReader (borrowed, zero-copy) and StreamReader
// (buffered, always owned).
type Reader interface {
	io.ByteReader

	// ReadExact returns exactly n bytes or ErrEOF. The returned slice is
	// only valid until the next call on this Reader.
	ReadExact(n int) ([]byte, error)

	// BufferedReadBytes returns n bytes either borrowed from the
	// underlying source, or appended to *scratch and returned from its
	// tail. Borrowed returns are valid for the source's lifetime; Owned
	// returns are valid for *scratch's lifetime.
	BufferedReadBytes(n int, scratch *[]byte) (BufferedBytes, error)

	// Borrowed reports whether this Reader's reads are zero-copy. Callers
	// use this to decide whether a read should be charged against an
	// allocation budget.
	Borrowed() bool

	// Remaining reports how many bytes remain unconsumed, or -1 when the
	// source cannot tell.
	Remaining() int
}

// SliceReader reads from an in-memory byte slice with zero-copy semantics:
// every read returns a subslice of the original data.
type SliceReader struct {
	data []byte
	pos  int
}

// NewSliceReader wraps data for zero-copy reading.
func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data}
}

func (r *SliceReader) Borrowed() bool { return true }
func (r *SliceReader) Remaining() int { return len(r.data) - r.pos }

func (r *SliceReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, poterr.ErrEOF
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

func (r *SliceReader) ReadExact(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, poterr.ErrEOF
	}

	view := r.data[r.pos : r.pos+n]
	r.pos += n

	return view, nil
}

func (r *SliceReader) BufferedReadBytes(n int, _ *[]byte) (BufferedBytes, error) {
	view, err := r.ReadExact(n)
	if err != nil {
		return BufferedBytes{}, err
	}

	return BufferedBytes{Data: view, Owned: false}, nil
}

// StreamReader reads from an io.Reader without read-ahead: ReadByte pulls
// exactly one byte per call. It never borrows: every BufferedReadBytes call
// appends to the caller's scratch buffer, and ReadExact always copies.
type StreamReader struct {
	r   io.Reader
	buf []byte // small lookahead buffer for single-byte reads
	pos int
}

// NewStreamReader wraps r for buffered, always-owned reading.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: r}
}

func (r *StreamReader) Borrowed() bool { return false }

// Remaining is unknown for a stream; StreamReader reports -1.
func (r *StreamReader) Remaining() int { return -1 }

func (r *StreamReader) fill(n int) error {
	if r.pos < len(r.buf) {
		return nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return mapEOF(err)
	}

	r.buf = buf
	r.pos = 0

	return nil
}

func (r *StreamReader) ReadByte() (byte, error) {
	if err := r.fill(1); err != nil {
		return 0, err
	}

	b := r.buf[r.pos]
	r.pos++

	return b, nil
}

func (r *StreamReader) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, mapEOF(err)
	}

	return buf, nil
}

func (r *StreamReader) BufferedReadBytes(n int, scratch *[]byte) (BufferedBytes, error) {
	start := len(*scratch)
	*scratch = append(*scratch, make([]byte, n)...)

	if n > 0 {
		if _, err := io.ReadFull(r.r, (*scratch)[start:]); err != nil {
			*scratch = (*scratch)[:start]
			return BufferedBytes{}, mapEOF(err)
		}
	}

	return BufferedBytes{Data: (*scratch)[start:], Owned: true}, nil
}

func mapEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF { //nolint:errorlint
		return poterr.ErrEOF
	}

	return err
}
