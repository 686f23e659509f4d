package codec

import (
	"github.com/khonsulabs/pot/potio"
	"github.com/khonsulabs/pot/symbol"
)

// interner is the encode-side view of a symbol table, satisfied directly
// by *symbol.Table.Intern and, via pushInterner, *symbol.PersistentMap.Push
// (both already share the (name string) (id uint64, fresh bool) shape).
type interner interface {
	Intern(name string) (id uint64, fresh bool)
}

type pushInterner struct{ m *symbol.PersistentMap }

func (p pushInterner) Intern(name string) (uint64, bool) { return p.m.Push(name) }

// resolver is the decode-side view of a symbol table: resolve a reference
// by id, or register a fresh introduction read off the wire.
type resolver interface {
	Lookup(id uint64) (string, error)
	Append(name string) uint64
}

type tableResolver struct{ t *symbol.Table }

func (r tableResolver) Lookup(id uint64) (string, error) { return r.t.Lookup(id) }
func (r tableResolver) Append(name string) uint64        { return r.t.Append(name) }

type persistentResolver struct{ m *symbol.PersistentMap }

func (r persistentResolver) Lookup(id uint64) (string, error) { return r.m.LookupID(id) }
func (r persistentResolver) Append(name string) uint64        { id, _ := r.m.Push(name); return id }

// writeSymbol interns name via in and writes the Symbol atom: a bare
// reference if it was already known, or a new-introduction payload
// otherwise.
func writeSymbol(sink potio.Sink, in interner, name string) error {
	if id, fresh := in.Intern(name); !fresh {
		return writeSymbolRef(sink, id)
	}

	return writeSymbolNew(sink, name)
}

// readSymbol reads a Symbol atom's arg and payload and resolves it to a
// name via res, charging newly-read bytes against bgt.
func readSymbol(r potio.Reader, res resolver, arg uint64, bgt *budget, scratch *[]byte) (string, error) {
	fresh := arg&1 == 0
	rest := arg >> 1

	if !fresh {
		return res.Lookup(rest)
	}

	n := int(rest)

	// Materializing an owned string from the payload always allocates,
	// whether the read itself borrowed (slice reader) or copied into
	// scratch (stream reader) — charge once for that allocation, before
	// the read runs, so a streaming source never allocates n bytes ahead
	// of the budget check.
	if err := bgt.charge(uint64(n)); err != nil {
		return "", err
	}

	bb, err := r.BufferedReadBytes(n, scratch)
	if err != nil {
		return "", err
	}

	name := string(bb.Data)
	res.Append(name)

	return name, nil
}
