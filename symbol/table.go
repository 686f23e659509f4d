// Package symbol implements the per-document symbol table and the
// cross-document persistent symbol table Pot uses to intern repeated map
// keys and Named-atom discriminants.
package symbol

import (
	"fmt"

	"github.com/khonsulabs/pot/poterr"
)

// Table is a per-document symbol table: a dense, monotonically assigned
// id→name mapping built up as an encoder or decoder interns strings. Ids
// are assigned in first-seen order starting at 0.
type Table struct {
	names  []string
	byName map[string]uint64
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{byName: make(map[string]uint64)}
}

// Intern returns the id for name, assigning a fresh one if name hasn't been
// seen in this table before. The second return value reports whether the
// id is fresh (the caller encodes this as the Symbol atom's "new" bit).
func (t *Table) Intern(name string) (id uint64, fresh bool) {
	if id, ok := t.byName[name]; ok {
		return id, false
	}

	id = uint64(len(t.names))
	t.names = append(t.names, name)
	t.byName[name] = id

	return id, true
}

// Define records name at a specific id produced by a peer (the decoder
// side of Intern): it must be called with ids in strictly increasing order
// starting at 0, mirroring the dense assignment invariant.
func (t *Table) Define(id uint64, name string) error {
	if id != uint64(len(t.names)) {
		return fmt.Errorf("%w: symbol id %d is not the next dense id (expected %d)", poterr.ErrUnknownSymbol, id, len(t.names))
	}

	t.names = append(t.names, name)
	t.byName[name] = id

	return nil
}

// Append records name at the next dense id unconditionally — the decode
// side of a fresh Symbol atom, which trusts the wire's append order rather
// than re-deriving it from a dedup check.
func (t *Table) Append(name string) uint64 {
	id := uint64(len(t.names))
	t.names = append(t.names, name)
	t.byName[name] = id

	return id
}

// Lookup resolves id to its interned name.
func (t *Table) Lookup(id uint64) (string, error) {
	if id >= uint64(len(t.names)) {
		return "", fmt.Errorf("%w: id %d", poterr.ErrUnknownSymbol, id)
	}

	return t.names[id], nil
}

// Len reports how many symbols have been interned.
func (t *Table) Len() int { return len(t.names) }

// Reset empties the table for reuse.
func (t *Table) Reset() {
	clear(t.byName)
	t.names = t.names[:0]
}
