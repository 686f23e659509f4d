package potio

import (
	"bytes"
	"testing"

	"github.com/khonsulabs/pot/poterr"
	"github.com/stretchr/testify/require"
)

func TestSliceReader_Borrows(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	r := NewSliceReader(data)
	require.True(t, r.Borrowed())

	var scratch []byte
	bb, err := r.BufferedReadBytes(3, &scratch)
	require.NoError(t, err)
	require.False(t, bb.Owned)
	require.Equal(t, []byte{1, 2, 3}, bb.Data)
	require.Empty(t, scratch, "slice reader must not touch scratch")

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(4), b)
}

func TestSliceReader_EOF(t *testing.T) {
	r := NewSliceReader([]byte{1})

	_, err := r.ReadExact(5)
	require.ErrorIs(t, err, poterr.ErrEOF)
}

func TestStreamReader_AlwaysOwned(t *testing.T) {
	r := NewStreamReader(bytes.NewReader([]byte{9, 8, 7, 6}))
	require.False(t, r.Borrowed())

	var scratch []byte
	bb, err := r.BufferedReadBytes(2, &scratch)
	require.NoError(t, err)
	require.True(t, bb.Owned)
	require.Equal(t, []byte{9, 8}, bb.Data)
	require.Len(t, scratch, 2)

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(7), b)
}

func TestStreamReader_EOF(t *testing.T) {
	r := NewStreamReader(bytes.NewReader(nil))

	_, err := r.ReadByte()
	require.Error(t, err)
}
