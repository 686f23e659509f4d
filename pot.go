// Package pot provides a compact, self-describing binary serialization
// codec for document-shaped data: every structural identifier (a struct
// field name, an enum variant name) is written at most once per document
// and referenced thereafter by a small integer symbol.
//
// # Basic usage
//
// Encoding a Go value to a byte slice and decoding it back:
//
//	type Point struct {
//		X, Y float64
//	}
//
//	data, err := pot.EncodeToVec(Point{X: 1, Y: 2})
//	// ...
//	p, err := pot.DecodeFromSlice[Point](data)
//
// When the shape of a document isn't known ahead of time, decode into the
// dynamic value tree instead:
//
//	v, err := pot.DecodeFromSlice[value.Value](data)
//
// # Package structure
//
// This package is a thin convenience wrapper around codec, the way
// mebo.go wraps blob. Advanced usage — custom allocation budgets, a
// bridge.Registry of extra Marshaler/Unmarshaler implementations, or a
// symbol.PersistentMap shared across many documents — goes through the
// codec and symbol packages directly.
package pot

import (
	"bytes"
	"io"

	"github.com/khonsulabs/pot/codec"
	"github.com/khonsulabs/pot/potio"
	"github.com/khonsulabs/pot/snapshot"
	"github.com/khonsulabs/pot/symbol"
	"github.com/khonsulabs/pot/value"
)

// PersistentMap re-exports symbol.PersistentMap so callers needn't import
// the symbol package for the common cross-document case.
type PersistentMap = symbol.PersistentMap

// NewPersistentMap creates an empty cross-document symbol table.
func NewPersistentMap() *PersistentMap { return symbol.NewPersistentMap() }

// LoadPersistentMap rebuilds a PersistentMap from a prior Snapshot.
func LoadPersistentMap(r io.Reader, c snapshot.Codec) (*PersistentMap, error) {
	return symbol.LoadPersistentMap(r, c)
}

// Encode writes v to w as one complete Pot document, using ambient
// defaults (codec.NewConfig with no options).
func Encode(v any, w io.Writer) error {
	cfg, err := codec.NewConfig()
	if err != nil {
		return err
	}

	return codec.NewEncoder(asSink(w), cfg).Encode(v)
}

// EncodeToVec encodes v and returns the resulting document bytes.
func EncodeToVec(v any) ([]byte, error) {
	var buf bytes.Buffer

	if err := Encode(v, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeFromSlice decodes one Pot document from data into a fresh value
// of type T, reading with the zero-copy SliceReader.
func DecodeFromSlice[T any](data []byte) (T, error) {
	var out T

	cfg, err := codec.NewConfig()
	if err != nil {
		return out, err
	}

	dec := codec.NewDecoder(potio.NewSliceReader(data), cfg)
	if err := dec.DecodeInto(&out, cfg.AllocationBudget, false); err != nil {
		return out, err
	}

	return out, nil
}

// DecodeFromReader decodes one Pot document from r into a fresh value of
// type T, reading through the buffered StreamReader.
func DecodeFromReader[T any](r io.Reader) (T, error) {
	var out T

	cfg, err := codec.NewConfig()
	if err != nil {
		return out, err
	}

	dec := codec.NewDecoder(potio.NewStreamReader(r), cfg)
	if err := dec.DecodeInto(&out, cfg.AllocationBudget, false); err != nil {
		return out, err
	}

	return out, nil
}

// ValueFromSerialize converts a Go value into the dynamic value.Value
// tree by round-tripping it through the encoder and decoder. It lives
// here, rather than as a method or function in package value, because
// producing a Value from an arbitrary Go type needs the same
// reflection/bridge traversal the encoder already implements, and value
// must not import codec.
func ValueFromSerialize(v any) (value.Value, error) {
	data, err := EncodeToVec(v)
	if err != nil {
		return value.Value{}, err
	}

	return DecodeFromSlice[value.Value](data)
}

// DecodeValueAs converts a decoded value.Value into a concrete Go type T.
// Go forbids generic methods, so this is a free function rather than a
// method on value.Value, mirroring DecodeFromSlice's shape.
func DecodeValueAs[T any](v value.Value) (T, error) {
	data, err := EncodeToVec(v)
	if err != nil {
		var zero T
		return zero, err
	}

	return DecodeFromSlice[T](data)
}

// NewPersistentEncoder creates an Encoder whose symbol table is the
// cross-document m: names interned while encoding one document remain
// known for subsequent documents sharing m.
func NewPersistentEncoder(w io.Writer, m *PersistentMap, opts ...codec.Option) (*codec.Encoder, error) {
	cfg, err := codec.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return codec.NewPersistentEncoder(asSink(w), cfg, m), nil
}

// NewPersistentDecoder creates a Decoder resolving symbols against the
// cross-document m.
func NewPersistentDecoder(r io.Reader, m *PersistentMap, opts ...codec.Option) (*codec.Decoder, error) {
	cfg, err := codec.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return codec.NewPersistentDecoder(potio.NewStreamReader(r), cfg, m), nil
}

func asSink(w io.Writer) potio.Sink {
	if s, ok := w.(potio.Sink); ok {
		return s
	}

	return &writerSink{w: w}
}

// writerSink adapts any io.Writer to potio.Sink, which additionally needs
// io.ByteWriter.
type writerSink struct {
	w   io.Writer
	one [1]byte
}

func (s *writerSink) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *writerSink) WriteByte(b byte) error {
	s.one[0] = b
	_, err := s.w.Write(s.one[:])

	return err
}
