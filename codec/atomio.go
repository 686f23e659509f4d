package codec

import (
	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/potio"
)

// The helpers in this file are the thin glue between atom (pure
// kind/arg/payload packing) and potio (the byte sink/source): they write
// or read one complete atom, header through payload.

func writeSpecial(sink potio.Sink, sub atom.SpecialKind) error {
	return atom.WriteHeader(sink, atom.KindSpecial, uint64(sub))
}

func writeInt(sink potio.Sink, n atom.Integer) error {
	width := n.MinimalWidth()

	kind := atom.KindUInt
	if n.IsSigned() {
		kind = atom.KindInt
	}

	if err := atom.WriteHeader(sink, kind, uint64(width-1)); err != nil {
		return err
	}

	buf := make([]byte, width)
	n.PutBytes(buf, width)

	_, err := sink.Write(buf)

	return err
}

func writeFloat(sink potio.Sink, f atom.Float) error {
	arg := f.EncodeWidth()

	if err := atom.WriteHeader(sink, atom.KindFloat, uint64(arg)); err != nil {
		return err
	}

	width := 4
	if arg == atom.Float64Arg {
		width = 8
	}

	buf := make([]byte, width)
	f.PutBytes(buf, arg)

	_, err := sink.Write(buf)

	return err
}

func writeBytesAtom(sink potio.Sink, data []byte) error {
	if err := atom.WriteHeader(sink, atom.KindBytes, uint64(len(data))); err != nil {
		return err
	}

	_, err := sink.Write(data)

	return err
}

func writeSequenceHeader(sink potio.Sink, count int) error {
	return atom.WriteHeader(sink, atom.KindSequence, uint64(count))
}

func writeMapHeader(sink potio.Sink, pairCount int) error {
	return atom.WriteHeader(sink, atom.KindMap, uint64(pairCount))
}

func writeDynamicMapHeader(sink potio.Sink) error {
	return writeSpecial(sink, atom.SpecialDynamicMap)
}

func writeDynamicEnd(sink potio.Sink) error {
	return writeSpecial(sink, atom.SpecialDynamicEnd)
}

func writeNamedMarker(sink potio.Sink) error {
	return writeSpecial(sink, atom.SpecialNamed)
}

// writeSymbolRef writes a reference to a previously interned symbol: arg's
// low bit set, id in the remaining bits.
func writeSymbolRef(sink potio.Sink, id uint64) error {
	return atom.WriteHeader(sink, atom.KindSymbol, (id<<1)|1)
}

// writeSymbolNew writes a fresh symbol introduction: arg's low bit clear,
// the UTF-8 payload's byte length in the remaining bits, followed by the
// payload itself. The id it's assigned is implicit — the next dense id in
// the table — not carried in the atom.
func writeSymbolNew(sink potio.Sink, name string) error {
	if err := atom.WriteHeader(sink, atom.KindSymbol, uint64(len(name))<<1); err != nil {
		return err
	}

	_, err := sink.Write([]byte(name))

	return err
}
