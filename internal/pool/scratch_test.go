package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_WriteAndGrow(t *testing.T) {
	buf := NewBuffer(2)

	require.NoError(t, buf.WriteByte('a'))
	n, err := buf.Write([]byte("bcdef"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("abcdef"), buf.Bytes())
}

func TestBuffer_ExtendOrGrow(t *testing.T) {
	buf := NewBuffer(4)
	buf.ExtendOrGrow(10)
	require.Equal(t, 10, buf.Len())
	require.GreaterOrEqual(t, buf.Cap(), 10)
}

func TestPool_DiscardsOversizedBuffers(t *testing.T) {
	p := NewPool(4, 8)

	buf := p.Get()
	buf.Grow(100)
	p.Put(buf)

	fresh := p.Get()
	require.Less(t, fresh.Cap(), 100)
}

func TestGetStringSlice_Roundtrip(t *testing.T) {
	slice, cleanup := GetStringSlice(3)
	require.Len(t, slice, 3)
	cleanup()
}
