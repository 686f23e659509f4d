package symbol

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/khonsulabs/pot/internal/hash"
	"github.com/khonsulabs/pot/internal/pool"
	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/snapshot"
)

// PersistentMap is a symbol table shared across many documents: once a
// string is interned here, every later document can reference it by id
// without re-sending the bytes. It is safe for concurrent use.
type PersistentMap struct {
	mu     sync.RWMutex
	names  []string
	byName map[string]uint64
}

// NewPersistentMap creates an empty PersistentMap.
func NewPersistentMap() *PersistentMap {
	return &PersistentMap{byName: make(map[string]uint64)}
}

// Push interns name, returning its id and whether it was newly assigned.
func (m *PersistentMap) Push(name string) (id uint64, fresh bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byName[name]; ok {
		return id, false
	}

	id = uint64(len(m.names))
	m.names = append(m.names, name)
	m.byName[name] = id

	return id, true
}

// Lookup resolves a name to its id, if interned.
func (m *PersistentMap) Lookup(name string) (uint64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]

	return id, ok
}

// LookupID resolves an id to its name.
func (m *PersistentMap) LookupID(id uint64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id >= uint64(len(m.names)) {
		return "", fmt.Errorf("%w: persistent id %d", poterr.ErrUnknownSymbol, id)
	}

	return m.names[id], nil
}

// Len reports how many names are interned.
func (m *PersistentMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.names)
}

// Snapshot serializes the table as a length-prefixed sequence of names —
// [Count: uint32][Len1: uint32][Name1]...[LenN: uint32][NameN][Hash: uint64]
// — the trailing hash is the xxHash64 of everything before it, computed
// pre-compression so a later load can tell codec-level corruption apart
// from a silently truncated write — compressed with codec, and written to w.
func (m *PersistentMap) Snapshot(w io.Writer, codec snapshot.Codec) error {
	m.mu.RLock()
	names := make([]string, len(m.names))
	copy(names, m.names)
	m.mu.RUnlock()

	buf := pool.Get()
	defer pool.Put(buf)

	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(names))) //nolint:gosec
	buf.B = append(buf.B, lenBytes[:]...)

	for _, name := range names {
		binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(name))) //nolint:gosec
		buf.B = append(buf.B, lenBytes[:]...)
		buf.B = append(buf.B, name...)
	}

	var hashBytes [8]byte
	binary.LittleEndian.PutUint64(hashBytes[:], hash.Bytes(buf.Bytes()))
	buf.B = append(buf.B, hashBytes[:]...)

	compressed, err := codec.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("pot: snapshot compression failed: %w", err)
	}

	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("pot: snapshot write failed: %w", err)
	}

	return nil
}

// LoadPersistentMap reconstructs a PersistentMap previously written by
// Snapshot, decompressing with codec and verifying its trailing content
// hash.
func LoadPersistentMap(r io.Reader, codec snapshot.Codec) (*PersistentMap, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pot: snapshot read failed: %w", err)
	}

	decompressed, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("pot: snapshot decompression failed: %w", err)
	}

	if len(decompressed) < 8 {
		return nil, fmt.Errorf("%w: snapshot missing checksum trailer", poterr.ErrEOF)
	}

	data := decompressed[:len(decompressed)-8]
	wantHash := binary.LittleEndian.Uint64(decompressed[len(decompressed)-8:])

	if gotHash := hash.Bytes(data); gotHash != wantHash {
		return nil, poterr.ErrSnapshotChecksumMismatch
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("%w: snapshot missing count header", poterr.ErrEOF)
	}

	count := binary.LittleEndian.Uint32(data)
	offset := 4

	names, cleanup := pool.GetStringSlice(int(count))
	defer cleanup()

	m := NewPersistentMap()

	for i := range int(count) {
		if len(data) < offset+4 {
			return nil, fmt.Errorf("%w: truncated length for name %d", poterr.ErrEOF, i)
		}

		nameLen := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4

		if len(data) < offset+nameLen {
			return nil, fmt.Errorf("%w: truncated bytes for name %d", poterr.ErrEOF, i)
		}

		names[i] = string(data[offset : offset+nameLen])
		offset += nameLen
	}

	for _, name := range names {
		if _, err := m.pushOrdered(name); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// pushOrdered appends name as the next dense id, failing if it's a
// duplicate (a well-formed snapshot never contains one).
func (m *PersistentMap) pushOrdered(name string) (uint64, error) {
	if _, ok := m.byName[name]; ok {
		return 0, fmt.Errorf("pot: duplicate name %q in persistent snapshot", name)
	}

	id := uint64(len(m.names))
	m.names = append(m.names, name)
	m.byName[name] = id

	return id, nil
}
