//go:build nobuild

package snapshot

import "github.com/valyala/gozstd"

// Compress is the cgo-backed alternative to zstd_pure.go, gated behind
// "nobuild" (never built by default, matching the toolchain's other cgo
// alternative) so deployments that can't link cgo still get a pure-Go path.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 19), nil
}

func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
