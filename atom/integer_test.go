package atom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInteger_MinimalWidth(t *testing.T) {
	cases := []struct {
		v     uint64
		width int
	}{
		{0, 1},
		{255, 1},
		{256, 2},
		{65_536, 3},
		{1 << 24, 4},
		{1 << 32, 6},
		{1 << 48, 8},
	}

	for _, c := range cases {
		n := FromUint64(c.v)
		require.Equal(t, c.width, n.MinimalWidth(), "value %d", c.v)
	}
}

func TestInteger_MinimalWidth_Signed(t *testing.T) {
	require.Equal(t, 1, FromInt64(-128).MinimalWidth())
	require.Equal(t, 2, FromInt64(-129).MinimalWidth())
	require.Equal(t, 1, FromInt64(127).MinimalWidth())
	require.Equal(t, 2, FromInt64(128).MinimalWidth())
}

func TestInteger_RoundTripBytes(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, -128, 1000, -1000, 1 << 40, -(1 << 40)} {
		n := FromInt64(v)
		width := n.MinimalWidth()
		buf := make([]byte, width)
		n.PutBytes(buf, width)

		got, err := ParseInteger(buf, width, true)
		require.NoError(t, err)

		back, err := got.AsInt64()
		require.NoError(t, err)
		require.Equal(t, v, back)
	}
}

func TestInteger_RoundTripBytes_Unsigned(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 1 << 32, 1 << 48} {
		n := FromUint64(v)
		width := n.MinimalWidth()
		buf := make([]byte, width)
		n.PutBytes(buf, width)

		got, err := ParseInteger(buf, width, false)
		require.NoError(t, err)

		back, err := got.AsUint64()
		require.NoError(t, err)
		require.Equal(t, v, back)
	}
}

func TestInteger_AsInt8_ImpreciseCast(t *testing.T) {
	n := FromInt64(200)
	_, err := n.AsInt8()
	require.Error(t, err)
}

func TestInteger_AsUint64_NegativeFails(t *testing.T) {
	n := FromInt64(-1)
	_, err := n.AsUint64()
	require.Error(t, err)
}

func TestInteger_NonNegativeSignedStaysInt(t *testing.T) {
	// Encoding a non-negative signed value keeps its signedness hint; it
	// is not reinterpreted as unsigned based on sign alone.
	n := FromInt64(5)
	require.True(t, n.IsSigned())
}
