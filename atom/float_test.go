package atom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat_EncodeWidth(t *testing.T) {
	require.Equal(t, Float32Arg, FromFloat64(1.5).EncodeWidth())
	require.Equal(t, Float64Arg, FromFloat64(0.1).EncodeWidth())
}

func TestFloat_RoundTrip_F32(t *testing.T) {
	f := FromFloat64(1.5)
	buf := make([]byte, 4)
	f.PutBytes(buf, Float32Arg)

	got, err := ParseFloat(buf, Float32Arg)
	require.NoError(t, err)
	require.InDelta(t, 1.5, got.AsFloat64(), 0)
}

func TestFloat_RoundTrip_F64(t *testing.T) {
	f := FromFloat64(0.1)
	buf := make([]byte, 8)
	f.PutBytes(buf, Float64Arg)

	got, err := ParseFloat(buf, Float64Arg)
	require.NoError(t, err)
	require.Equal(t, 0.1, got.AsFloat64())
}

func TestFloat_NaNNotCanonicalized(t *testing.T) {
	nan := math.Float64frombits(0x7ff8000000000001)
	f := FromFloat64(nan)
	buf := make([]byte, 8)
	f.PutBytes(buf, Float64Arg)

	got, err := ParseFloat(buf, Float64Arg)
	require.NoError(t, err)
	require.Equal(t, math.Float64bits(nan), math.Float64bits(got.AsFloat64()))
}

func TestFloat_AsFloat32_ImpreciseCast(t *testing.T) {
	_, err := FromFloat64(0.1).AsFloat32()
	require.Error(t, err)
}
