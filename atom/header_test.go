package atom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadHeader_Inline(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteHeader(&buf, KindBytes, 5))
	require.Equal(t, []byte{byte(KindBytes)<<5 | 5}, buf.Bytes())

	kind, arg, err := ReadHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, KindBytes, kind)
	require.Equal(t, uint64(5), arg)
}

func TestWriteReadHeader_Extended(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteHeader(&buf, KindSequence, 1000))

	kind, arg, err := ReadHeader(&buf)
	require.NoError(t, err)
	require.Equal(t, KindSequence, kind)
	require.Equal(t, uint64(1000), arg)
}

func TestWriteReadHeader_BoundaryArgs(t *testing.T) {
	for _, arg := range []uint64{0, 1, 15, 16, 127, 128, 1 << 20, 1 << 40} {
		var buf bytes.Buffer
		require.NoError(t, WriteHeader(&buf, KindMap, arg))

		kind, got, err := ReadHeader(&buf)
		require.NoError(t, err)
		require.Equal(t, KindMap, kind)
		require.Equal(t, arg, got)
		require.Equal(t, 0, buf.Len(), "header should consume all written bytes")
	}
}

func TestReadHeader_EmptyInput(t *testing.T) {
	// All 8 possible 3-bit kind values are defined, so there's no invalid
	// kind bit pattern to exercise; this covers the EOF failure mode (the
	// short-continuation mode is covered by the next test).
	_, _, err := ReadHeader(bytes.NewReader(nil))
	require.Error(t, err)
}

func TestReadHeader_TruncatedContinuation(t *testing.T) {
	// Extension flag set, but no continuation bytes follow.
	data := []byte{byte(KindInt)<<5 | extensionFlag}
	_, _, err := ReadHeader(bytes.NewReader(data))
	require.Error(t, err)
}
