package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/value"
)

// decodeValue reads one atom and reconstructs it as a dynamic value.Value
// tree, preserving every kind the wire can express (including Named
// variants and duplicate-key mappings) without requiring a Go type to
// decode into.
func (d *Decoder) decodeValue() (value.Value, error) {
	kind, arg, err := atom.ReadHeader(d.r)
	if err != nil {
		return value.Value{}, err
	}

	return d.decodeValueGivenHeader(kind, arg)
}

func (d *Decoder) decodeValueGivenHeader(kind atom.Kind, arg uint64) (value.Value, error) { //nolint:cyclop
	switch kind {
	case atom.KindSpecial:
		return d.decodeSpecialValue(atom.SpecialKind(arg))
	case atom.KindSymbol:
		name, err := readSymbol(d.r, d.names, arg, d.bgt, &d.scratch)
		if err != nil {
			return value.Value{}, err
		}

		return value.String(name), nil
	case atom.KindInt:
		n, err := d.readInteger(widthFromArg(arg), true)
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(n), nil
	case atom.KindUInt:
		n, err := d.readInteger(widthFromArg(arg), false)
		if err != nil {
			return value.Value{}, err
		}

		return value.Int(n), nil
	case atom.KindFloat:
		width, err := floatWidthFromArg(arg)
		if err != nil {
			return value.Value{}, err
		}

		f, err := d.readFloat(width, arg)
		if err != nil {
			return value.Value{}, err
		}

		return value.Float(f), nil
	case atom.KindBytes:
		payload, err := d.readBytesPayload(int(arg))
		if err != nil {
			return value.Value{}, err
		}

		if utf8.Valid(payload) {
			return value.String(string(payload)), nil
		}

		return value.Bytes(payload), nil
	case atom.KindSequence:
		return d.decodeValueSequence(int(arg))
	case atom.KindMap:
		return d.decodeValueMappings(int(arg))
	default:
		return value.Value{}, fmt.Errorf("%w: %d", poterr.ErrInvalidKind, kind)
	}
}

func (d *Decoder) decodeSpecialValue(sub atom.SpecialKind) (value.Value, error) {
	switch sub {
	case atom.SpecialNone:
		return value.None(), nil
	case atom.SpecialUnit:
		return value.Unit(), nil
	case atom.SpecialTrue:
		return value.Bool(true), nil
	case atom.SpecialFalse:
		return value.Bool(false), nil
	case atom.SpecialNamed:
		kind, arg, err := atom.ReadHeader(d.r)
		if err != nil {
			return value.Value{}, err
		}

		if kind != atom.KindSymbol {
			return value.Value{}, fmt.Errorf("%w: named variant name must be a symbol atom", poterr.ErrUnexpectedKind)
		}

		name, err := readSymbol(d.r, d.names, arg, d.bgt, &d.scratch)
		if err != nil {
			return value.Value{}, err
		}

		payload, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		return value.NamedValue(name, payload), nil
	case atom.SpecialDynamicMap:
		return d.decodeValueDynamicMappings()
	default:
		return value.Value{}, fmt.Errorf("%w: special sub-kind %d", poterr.ErrInvalidKind, sub)
	}
}

func (d *Decoder) decodeValueSequence(count int) (value.Value, error) {
	items := make([]value.Value, count)

	for i := range count {
		v, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		items[i] = v
	}

	return value.Sequence(items), nil
}

func (d *Decoder) decodeValueMappings(pairCount int) (value.Value, error) {
	pairs := make([]value.Mapping, pairCount)

	for i := range pairCount {
		key, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		val, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		pairs[i] = value.Mapping{Key: key, Value: val}
	}

	return value.Mappings(pairs), nil
}

func (d *Decoder) decodeValueDynamicMappings() (value.Value, error) {
	var pairs []value.Mapping

	for {
		kind, arg, done, err := d.nextIsDynamicEnd()
		if err != nil {
			return value.Value{}, err
		}

		if done {
			return value.Mappings(pairs), nil
		}

		key, err := d.decodeValueGivenHeader(kind, arg)
		if err != nil {
			return value.Value{}, err
		}

		val, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		pairs = append(pairs, value.Mapping{Key: key, Value: val})
	}
}

// skipValue reads and discards one atom, including its transitive
// payload, still resolving any Symbol atoms encountered so the symbol
// table's dense id counter stays in sync with the wire.
func (d *Decoder) skipValue() error {
	kind, arg, err := atom.ReadHeader(d.r)
	if err != nil {
		return err
	}

	return d.skipGivenHeader(kind, arg)
}

func (d *Decoder) skipGivenHeader(kind atom.Kind, arg uint64) error { //nolint:cyclop
	switch kind {
	case atom.KindSpecial:
		sub := atom.SpecialKind(arg)
		if sub == atom.SpecialDynamicMap {
			// A dynamic map's key/value pairs run until DynamicEnd.
			for {
				keyKind, keyArg, done, err := d.nextIsDynamicEnd()
				if err != nil || done {
					return err
				}

				if err := d.skipGivenHeader(keyKind, keyArg); err != nil {
					return err
				}

				if err := d.skipValue(); err != nil {
					return err
				}
			}
		}

		if sub != atom.SpecialNamed {
			return nil
		}

		// A named variant's payload follows the name symbol and must be
		// skipped too.
		nameKind, nameArg, err := atom.ReadHeader(d.r)
		if err != nil {
			return err
		}

		if nameKind != atom.KindSymbol {
			return fmt.Errorf("%w: named variant name must be a symbol atom", poterr.ErrUnexpectedKind)
		}

		if _, err := readSymbol(d.r, d.names, nameArg, d.bgt, &d.scratch); err != nil {
			return err
		}

		return d.skipValue()
	case atom.KindSymbol:
		_, err := readSymbol(d.r, d.names, arg, d.bgt, &d.scratch)
		return err
	case atom.KindInt, atom.KindUInt:
		_, err := d.readInteger(widthFromArg(arg), kind == atom.KindInt)
		return err
	case atom.KindFloat:
		width, err := floatWidthFromArg(arg)
		if err != nil {
			return err
		}

		_, err = d.readFloat(width, arg)

		return err
	case atom.KindBytes:
		_, err := d.readBytesPayload(int(arg))
		return err
	case atom.KindSequence:
		for range int(arg) {
			if err := d.skipValue(); err != nil {
				return err
			}
		}

		return nil
	case atom.KindMap:
		for range int(arg) * 2 {
			if err := d.skipValue(); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %d", poterr.ErrInvalidKind, kind)
	}
}
