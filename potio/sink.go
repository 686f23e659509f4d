package potio

import "io"

// Sink is the byte-destination abstraction atom encoding writes through.
// *bufio.Writer and the pooled scratch buffer in internal/pool both satisfy
// it directly.
type Sink interface {
	io.ByteWriter
	io.Writer
}
