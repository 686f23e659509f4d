// Package format defines the small value types shared by Pot's on-disk
// storage helpers: the compression algorithm that snapshot.New selects for
// a persistent symbol table snapshot.
package format

// CompressionType identifies the compression codec applied to a snapshot
// payload. It is not written into the snapshot; the caller passes the same
// codec to Snapshot and LoadPersistentMap.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
