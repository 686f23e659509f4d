// Package snapshot provides compression codecs for persisting a
// symbol.PersistentMap snapshot to disk. It never touches the Pot atom wire
// format itself — only the out-of-band persistent symbol table.
package snapshot

import (
	"fmt"

	"github.com/khonsulabs/pot/format"
)

// Codec compresses and decompresses a persistent symbol table snapshot.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// New is a factory returning the built-in Codec for algorithm.
func New(algorithm format.CompressionType) (Codec, error) {
	switch algorithm {
	case format.CompressionNone:
		return NoOpCodec{}, nil
	case format.CompressionZstd:
		return ZstdCodec{}, nil
	case format.CompressionS2:
		return S2Codec{}, nil
	case format.CompressionLZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("snapshot: unsupported compression algorithm: %v", algorithm)
	}
}
