// Package poterr defines the sentinel error values for the Pot codec.
//
// Errors the codec itself detects wrap one of these sentinels with
// fmt.Errorf("%w: detail", poterr.ErrX, ...), so callers can use errors.Is
// to classify a failure regardless of the detail message attached to it.
// I/O errors from the underlying reader or writer, and Marshaler or
// Unmarshaler failures (wrapped as "pot: bridge ... failed: %w"), are
// passed through without a sentinel.
package poterr

import "errors"

var (
	// ErrNotAPot is returned when the 3-byte magic prefix does not match.
	ErrNotAPot = errors.New("pot: not a pot document")

	// ErrIncompatibleVersion is returned when the header version exceeds
	// the highest version this decoder supports.
	ErrIncompatibleVersion = errors.New("pot: incompatible document version")

	// ErrInvalidKind is returned when an atom header carries a kind value
	// outside the eight defined kinds.
	ErrInvalidKind = errors.New("pot: invalid atom kind")

	// ErrInvalidAtomHeader is returned when a header byte or its arg
	// continuation is malformed.
	ErrInvalidAtomHeader = errors.New("pot: invalid atom header")

	// ErrUnexpectedKind is returned when the host asked for one shape and
	// the stream holds another, with no fuzzy rule bridging the two.
	ErrUnexpectedKind = errors.New("pot: unexpected atom kind")

	// ErrUnknownSymbol is returned when a Symbol atom references an id
	// that has not been introduced in the current table.
	ErrUnknownSymbol = errors.New("pot: unknown symbol id")

	// ErrInvalidUTF8 is returned when a Bytes atom is decoded as a string
	// but its payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("pot: invalid utf-8 in string payload")

	// ErrImpreciseCast is returned when a numeric narrowing conversion
	// would lose information.
	ErrImpreciseCast = errors.New("pot: imprecise cast would lose data")

	// ErrEOF is returned when the source is exhausted mid-atom.
	ErrEOF = errors.New("pot: unexpected end of input")

	// ErrTrailingBytes is returned when bytes remain after the top-level
	// atom outside of persistent-table batch mode.
	ErrTrailingBytes = errors.New("pot: trailing bytes after document")

	// ErrTooManyBytesRead is returned when decoding a document would
	// exceed the configured allocation budget.
	ErrTooManyBytesRead = errors.New("pot: allocation budget exceeded")

	// ErrSequenceSizeMustBeKnown is returned when the encoder is asked to
	// emit a length-less sequence; only maps support the dynamic-length
	// encoding.
	ErrSequenceSizeMustBeKnown = errors.New("pot: sequence length must be known")

	// ErrMessage is the catch-all for a Go value the codec cannot map onto
	// Pot: a map with non-string keys, an unsupported Go kind, or a decode
	// target that is not a non-nil pointer. Marshaler and Unmarshaler
	// failures are not wrapped with it.
	ErrMessage = errors.New("pot: bridge error")

	// ErrSnapshotChecksumMismatch is returned when a loaded persistent
	// symbol table snapshot's content hash does not match the hash
	// stamped on it at Snapshot time.
	ErrSnapshotChecksumMismatch = errors.New("pot: snapshot checksum mismatch")
)
