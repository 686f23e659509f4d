package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/potio"
	"github.com/khonsulabs/pot/symbol"
	"github.com/khonsulabs/pot/value"
)

type idNameDoc struct {
	ID   int64  `pot:"id"`
	Name string `pot:"name"`
}

func TestDecode_S1_RoundTrip(t *testing.T) {
	data := []byte{
		0x50, 0x6f, 0x74, 0x00,
		0xa2,
		0xc4, 0x69, 0x64,
		0x40, 0x2a,
		0xc8, 0x6e, 0x61, 0x6d, 0x65,
		0xe5, 0x65, 0x63, 0x74, 0x6f, 0x6e,
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	dec := NewDecoder(potio.NewSliceReader(data), cfg)

	var got idNameDoc
	require.NoError(t, dec.DecodeInto(&got, cfg.AllocationBudget, false))
	require.Equal(t, idNameDoc{ID: 42, Name: "ecton"}, got)
}

func TestDecode_S2_EmptySequence(t *testing.T) {
	data := []byte{0x50, 0x6f, 0x74, 0x00, 0x80}

	cfg, err := NewConfig()
	require.NoError(t, err)

	dec := NewDecoder(potio.NewSliceReader(data), cfg)

	var got []int
	require.NoError(t, dec.DecodeInto(&got, cfg.AllocationBudget, false))
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestDecode_S4_IncompatibleVersion(t *testing.T) {
	data := []byte{0x50, 0x6f, 0x74, 0x01}

	cfg, err := NewConfig()
	require.NoError(t, err)

	dec := NewDecoder(potio.NewSliceReader(data), cfg)

	var got value.Value
	err = dec.DecodeInto(&got, cfg.AllocationBudget, false)
	require.ErrorIs(t, err, poterr.ErrIncompatibleVersion)
}

func TestDecode_S5_AllocationBudgetExceeded(t *testing.T) {
	// Header + a Bytes atom claiming a 10 MB payload, backed by enough
	// actual bytes to satisfy the read itself — the budget, not EOF, must
	// be what trips.
	var buf bytes.Buffer
	buf.Write([]byte{0x50, 0x6f, 0x74, 0x00})
	require.NoError(t, atom.WriteHeader(&buf, atom.KindBytes, 10_000_000))
	buf.Write(make([]byte, 10_000_000))

	cfg, err := NewConfig(WithAllocationBudget(1024))
	require.NoError(t, err)

	dec := NewDecoder(potio.NewSliceReader(buf.Bytes()), cfg)

	var got value.Value
	err = dec.DecodeInto(&got, cfg.AllocationBudget, false)
	require.ErrorIs(t, err, poterr.ErrTooManyBytesRead)
}

func TestDecode_StreamingBudgetChargedBeforeRead(t *testing.T) {
	// Header + a Bytes atom claiming a 10 MB payload, but with NO backing
	// payload bytes at all. If the decoder ever tried to read before
	// charging, this would fail with ErrEOF (or hang trying to read bytes
	// that don't exist); charging first must reject it as a budget
	// violation before any read of the claimed length is attempted.
	var buf bytes.Buffer
	buf.Write([]byte{0x50, 0x6f, 0x74, 0x00})
	require.NoError(t, atom.WriteHeader(&buf, atom.KindBytes, 10_000_000))

	cfg, err := NewConfig(WithAllocationBudget(1024))
	require.NoError(t, err)

	dec := NewDecoder(potio.NewStreamReader(&buf), cfg)

	var got value.Value
	err = dec.DecodeInto(&got, cfg.AllocationBudget, false)
	require.ErrorIs(t, err, poterr.ErrTooManyBytesRead)
}

func TestDecode_S6_NoneIntoU32DefaultsZero(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := NewEncoder(&buf, cfg)

	var nilPtr *uint8
	require.NoError(t, enc.Encode(nilPtr))

	dec := NewDecoder(potio.NewSliceReader(buf.Bytes()), cfg)

	var got uint32
	require.NoError(t, dec.DecodeInto(&got, cfg.AllocationBudget, false))
	require.Equal(t, uint32(0), got)
}

func TestRoundTrip_StructWithNestedSliceAndMap(t *testing.T) {
	type inner struct {
		Tags []string          `pot:"tags"`
		Meta map[string]string `pot:"meta"`
	}

	type outer struct {
		Inner inner `pot:"inner"`
		Count int   `pot:"count"`
	}

	in := outer{
		Inner: inner{
			Tags: []string{"a", "b", "c"},
			Meta: map[string]string{"k1": "v1", "k2": "v2"},
		},
		Count: 7,
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, cfg).Encode(in))

	var out outer
	require.NoError(t, NewDecoder(potio.NewSliceReader(buf.Bytes()), cfg).DecodeInto(&out, cfg.AllocationBudget, false))

	require.Equal(t, in, out)
}

func TestRoundTrip_SymbolDedup(t *testing.T) {
	type item struct {
		Name string `pot:"name"`
	}

	items := []item{{Name: "alice"}, {Name: "bob"}, {Name: "carol"}}

	cfg, err := NewConfig()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, cfg).Encode(items))

	// The field-name symbol "name" is interned once; only the distinct
	// field *values* repeat.
	count := bytes.Count(buf.Bytes(), []byte("name"))
	require.Equal(t, 1, count)

	var out []item
	require.NoError(t, NewDecoder(potio.NewSliceReader(buf.Bytes()), cfg).DecodeInto(&out, cfg.AllocationBudget, false))
	require.Equal(t, items, out)
}

func TestRoundTrip_TrailingBytesRejected(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, cfg).Encode(int64(5)))
	buf.WriteByte(0xff)

	var out int64
	err = NewDecoder(potio.NewSliceReader(buf.Bytes()), cfg).DecodeInto(&out, cfg.AllocationBudget, false)
	require.ErrorIs(t, err, poterr.ErrTrailingBytes)
}

func TestRoundTrip_UnitTypeDiscardsAnyAtom(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	// Encode a bool (True), decode into struct{} — must be discarded, not
	// erroring, per the converse of the fuzzy None/Unit default rule.
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf, cfg).Encode(true))

	var out struct{}
	require.NoError(t, NewDecoder(potio.NewSliceReader(buf.Bytes()), cfg).DecodeInto(&out, cfg.AllocationBudget, false))
}

func TestPersistentTables_ContinuityAcrossDocuments(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	encMap := symbol.NewPersistentMap()
	decMap := symbol.NewPersistentMap()

	type doc struct {
		Field string `pot:"field"`
	}

	var bufA bytes.Buffer
	encA := NewPersistentEncoder(&bufA, cfg, encMap)
	require.NoError(t, encA.Encode(doc{Field: "a"}))

	var bufB bytes.Buffer
	encB := NewPersistentEncoder(&bufB, cfg, encMap)
	require.NoError(t, encB.Encode(doc{Field: "b"}))

	// Document B must not re-send "field"'s bytes since A already
	// interned it on the shared table.
	require.NotContains(t, string(bufB.Bytes()), "field")

	decA := NewPersistentDecoder(potio.NewSliceReader(bufA.Bytes()), cfg, decMap)
	var outA doc
	require.NoError(t, decA.DecodeInto(&outA, cfg.AllocationBudget, false))
	require.Equal(t, "a", outA.Field)

	decB := NewPersistentDecoder(potio.NewSliceReader(bufB.Bytes()), cfg, decMap)
	var outB doc
	require.NoError(t, decB.DecodeInto(&outB, cfg.AllocationBudget, false))
	require.Equal(t, "b", outB.Field)
}
