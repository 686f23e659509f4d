// Package atom implements the on-wire atom format: the variable-length
// header byte, the minimal integer/float packing rules, and the LEB128-style
// argument continuation shared by every atom kind.
package atom

// Kind is the 3-bit tag selecting an atom's class. It occupies the high
// bits of the atom header byte.
type Kind uint8

// The numeric values below are load-bearing: they are fixed by the wire
// format's worked examples (a struct's leading Map atom header byte, its
// field-name Symbol atoms, and its Int-encoded field all carry specific
// bit patterns), not by the order the kinds happen to be listed in prose.
const (
	KindSpecial  Kind = 0
	KindUInt     Kind = 1
	KindInt      Kind = 2
	KindFloat    Kind = 3
	KindSequence Kind = 4
	KindMap      Kind = 5
	KindSymbol   Kind = 6
	KindBytes    Kind = 7
)

func (k Kind) String() string {
	switch k {
	case KindSpecial:
		return "Special"
	case KindSymbol:
		return "Symbol"
	case KindBytes:
		return "Bytes"
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindSequence:
		return "Sequence"
	case KindMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the eight defined atom kinds.
func (k Kind) Valid() bool {
	return k <= KindBytes
}

// SpecialKind is the sub-kind carried in the arg of a Special atom.
type SpecialKind uint64

const (
	SpecialNone SpecialKind = iota
	SpecialUnit
	SpecialTrue
	SpecialFalse
	SpecialNamed
	SpecialDynamicMap
	SpecialDynamicEnd
)

func (s SpecialKind) String() string {
	switch s {
	case SpecialNone:
		return "None"
	case SpecialUnit:
		return "Unit"
	case SpecialTrue:
		return "True"
	case SpecialFalse:
		return "False"
	case SpecialNamed:
		return "Named"
	case SpecialDynamicMap:
		return "DynamicMap"
	case SpecialDynamicEnd:
		return "DynamicEnd"
	default:
		return "Unknown"
	}
}
