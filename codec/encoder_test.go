package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/value"
)

func newEncoder() (*Encoder, *bytes.Buffer) {
	cfg, err := NewConfig()
	if err != nil {
		panic(err)
	}

	var buf bytes.Buffer

	return NewEncoder(&buf, cfg), &buf
}

func TestEncode_S1_ExactBytes(t *testing.T) {
	enc, buf := newEncoder()

	type doc struct {
		ID   int64  `pot:"id"`
		Name string `pot:"name"`
	}

	require.NoError(t, enc.Encode(doc{ID: 42, Name: "ecton"}))

	want := []byte{
		0x50, 0x6f, 0x74, 0x00, // "Pot\0"
		0xa2,                   // Map, 2 pairs
		0xc4, 0x69, 0x64, // Symbol "id" (fresh)
		0x40, 0x2a, // Int 42
		0xc8, 0x6e, 0x61, 0x6d, 0x65, // Symbol "name" (fresh)
		0xe5, 0x65, 0x63, 0x74, 0x6f, 0x6e, // Bytes "ecton"
	}

	require.Equal(t, want, buf.Bytes())
}

func TestEncode_S2_EmptySequence(t *testing.T) {
	enc, buf := newEncoder()

	require.NoError(t, enc.Encode([]int{}))

	require.Equal(t, []byte{0x50, 0x6f, 0x74, 0x00, 0x80}, buf.Bytes())
	require.Len(t, buf.Bytes(), 5)
}

func TestEncode_MinimalIntegerWidth(t *testing.T) {
	cases := []struct {
		name       string
		v          uint64
		wantLength int
	}{
		{"zero", 0, 1},
		{"255", 255, 1},
		{"256", 256, 2},
		{"65536", 65_536, 3},
		{"1<<24", 1 << 24, 4},
		{"1<<32", 1 << 32, 6},
		{"1<<48", 1 << 48, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc, buf := newEncoder()
			require.NoError(t, enc.Encode(tc.v))

			body := buf.Bytes()[4:] // strip header prefix
			require.Len(t, body, 1+tc.wantLength, "header byte + payload")
		})
	}
}

func TestEncode_FloatNarrowing(t *testing.T) {
	t.Run("1.5 narrows to f32", func(t *testing.T) {
		enc, buf := newEncoder()
		require.NoError(t, enc.Encode(1.5))

		body := buf.Bytes()[4:]
		require.Len(t, body, 1+4)
	})

	t.Run("0.1 stays f64", func(t *testing.T) {
		enc, buf := newEncoder()
		require.NoError(t, enc.Encode(0.1))

		body := buf.Bytes()[4:]
		require.Len(t, body, 1+8)
	})
}

func TestEncode_ChanRejected(t *testing.T) {
	enc, _ := newEncoder()

	ch := make(chan int)
	err := enc.Encode(ch)
	require.ErrorIs(t, err, poterr.ErrSequenceSizeMustBeKnown)
}

func TestEncode_NonStringMapKeyRejected(t *testing.T) {
	enc, _ := newEncoder()

	err := enc.Encode(map[int]string{1: "a"})
	require.ErrorIs(t, err, poterr.ErrMessage)
}

func TestEncode_DynamicValueTree(t *testing.T) {
	enc, buf := newEncoder()

	v := value.Mappings([]value.Mapping{
		{Key: value.String("a"), Value: value.FromInt64(1)},
	})

	require.NoError(t, enc.Encode(v))
	require.NotEmpty(t, buf.Bytes())
}

func TestEncoder_ResetsSymbolTableEachDocument(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	var first, second bytes.Buffer

	enc := NewEncoder(&first, cfg)
	require.NoError(t, enc.Encode(struct{ Name string }{Name: "x"}))

	enc2 := NewEncoder(&second, cfg)
	require.NoError(t, enc2.Encode(struct{ Name string }{Name: "x"}))

	require.Equal(t, first.Bytes(), second.Bytes(), "a fresh Encoder must not see reused ids from a prior one")

	// Re-using the same *Encoder* for a second document must also reset,
	// producing the identical bytes rather than a symbol reference.
	var reused bytes.Buffer
	sharedEnc := NewEncoder(&reused, cfg)
	require.NoError(t, sharedEnc.Encode(struct{ Name string }{Name: "x"}))
	reused.Reset()
	require.NoError(t, sharedEnc.Encode(struct{ Name string }{Name: "x"}))

	require.Equal(t, first.Bytes(), reused.Bytes())
}
