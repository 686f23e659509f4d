package codec

import (
	"fmt"

	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/potio"
)

// magic is the fixed three-byte "Pot\0" prefix; the fourth header byte is
// the format version.
var magic = [3]byte{'P', 'o', 't'}

// currentVersion is the only version this codec emits or accepts.
const currentVersion = 0

func writeHeaderPrefix(sink potio.Sink) error {
	if _, err := sink.Write(magic[:]); err != nil {
		return err
	}

	return sink.WriteByte(currentVersion)
}

// readHeaderPrefix validates the 4-byte magic+version prefix. Any version
// greater than currentVersion is IncompatibleVersion, per the Open
// Question resolution in SPEC_FULL.md §10.
func readHeaderPrefix(r potio.Reader) error {
	for i := range magic {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if b != magic[i] {
			return fmt.Errorf("%w: byte %d is 0x%02x", poterr.ErrNotAPot, i, b)
		}
	}

	version, err := r.ReadByte()
	if err != nil {
		return err
	}

	if version > currentVersion {
		return fmt.Errorf("%w: version %d", poterr.ErrIncompatibleVersion, version)
	}

	return nil
}
