package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khonsulabs/pot/format"
)

func TestCodecs_RoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly")

	for _, algo := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := New(algo)
		require.NoError(t, err, algo)

		compressed, err := codec.Compress(data)
		require.NoError(t, err, algo)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err, algo)
		require.Equal(t, data, decompressed, algo)
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, algo := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := New(algo)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}

func TestNew_UnsupportedAlgorithm(t *testing.T) {
	_, err := New(format.CompressionType(99))
	require.Error(t, err)
}
