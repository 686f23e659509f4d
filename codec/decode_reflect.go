package codec

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/bridge"
	"github.com/khonsulabs/pot/poterr"
)

// decodeReflect reads one atom's header, then dispatches into rv. A target
// reachable via bridge.Unmarshaler (its own method, or a registered
// UnmarshalFunc) takes priority over reflection, mirroring encodeAny's
// registry-before-reflection order.
func (d *Decoder) decodeReflect(rv reflect.Value) error {
	if rv.CanAddr() {
		target := rv.Addr().Interface()
		if _, ok := target.(bridge.Unmarshaler); ok {
			return d.decodeViaUnmarshaler(target)
		}

		if d.registry.HasUnmarshaler(rv.Type()) {
			return d.decodeViaUnmarshaler(target)
		}
	}

	kind, arg, err := atom.ReadHeader(d.r)
	if err != nil {
		return err
	}

	return d.decodeReflectGivenHeader(rv, kind, arg)
}

func (d *Decoder) decodeViaUnmarshaler(target any) error {
	v, err := d.decodeValue()
	if err != nil {
		return err
	}

	handled, err := d.registry.Unmarshal(v, target)
	if err != nil {
		return err
	}

	if !handled {
		return fmt.Errorf("%w: no unmarshaler handled %T", poterr.ErrMessage, target)
	}

	return nil
}

func (d *Decoder) decodeReflectGivenHeader(rv reflect.Value, kind atom.Kind, arg uint64) error { //nolint:cyclop
	// A target that represents "()" (an empty struct) consumes and
	// discards whatever atom arrives — the converse of the None/Unit
	// fuzzy-default rule below.
	if isUnitType(rv.Type()) {
		return d.skipGivenHeader(kind, arg)
	}

	if kind == atom.KindSpecial {
		sub := atom.SpecialKind(arg)

		switch sub {
		case atom.SpecialNone, atom.SpecialUnit:
			return d.applyFuzzyDefault(rv)
		case atom.SpecialTrue, atom.SpecialFalse:
			return d.setBool(rv, sub == atom.SpecialTrue)
		case atom.SpecialNamed:
			// Reflect-based decode has no generic way to represent a
			// named variant in an arbitrary Go type; callers that need
			// enum variants decode through value.Value or a
			// bridge.Unmarshaler instead.
			return fmt.Errorf("%w: named variant requires value.Value or bridge.Unmarshaler", poterr.ErrUnexpectedKind)
		case atom.SpecialDynamicMap:
			return d.decodeDynamicMapInto(rv)
		default:
			return fmt.Errorf("%w: special sub-kind %d", poterr.ErrInvalidKind, sub)
		}
	}

	switch kind {
	case atom.KindInt:
		return d.setInteger(rv, arg, true)
	case atom.KindUInt:
		return d.setInteger(rv, arg, false)
	case atom.KindFloat:
		return d.setFloat(rv, arg)
	case atom.KindBytes:
		return d.setBytes(rv, int(arg))
	case atom.KindSequence:
		return d.decodeSequenceInto(rv, int(arg))
	case atom.KindMap:
		return d.decodeMapInto(rv, int(arg))
	case atom.KindSymbol:
		return fmt.Errorf("%w: bare symbol atom outside key position", poterr.ErrUnexpectedKind)
	default:
		return fmt.Errorf("%w: %d", poterr.ErrInvalidKind, kind)
	}
}

func isUnitType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

// applyFuzzyDefault sets rv to its zero value — the decode-time tolerance
// for a None/Unit atom arriving where a typed value was requested.
func (d *Decoder) applyFuzzyDefault(rv reflect.Value) error {
	rv.Set(reflect.Zero(rv.Type()))

	return nil
}

func (d *Decoder) setBool(rv reflect.Value, b bool) error {
	if rv.Kind() != reflect.Bool {
		return fmt.Errorf("%w: atom is bool, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}

	rv.SetBool(b)

	return nil
}

func (d *Decoder) setInteger(rv reflect.Value, arg uint64, signed bool) error {
	width := widthFromArg(arg)

	n, err := d.readInteger(width, signed)
	if err != nil {
		return err
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := n.AsInt64()
		if err != nil {
			return err
		}

		rv.SetInt(v)

		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := n.AsUint64()
		if err != nil {
			return err
		}

		rv.SetUint(v)

		return nil
	default:
		return fmt.Errorf("%w: atom is integer, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}
}

func (d *Decoder) setFloat(rv reflect.Value, arg uint64) error {
	width, err := floatWidthFromArg(arg)
	if err != nil {
		return err
	}

	f, err := d.readFloat(width, arg)
	if err != nil {
		return err
	}

	if rv.Kind() != reflect.Float32 && rv.Kind() != reflect.Float64 {
		return fmt.Errorf("%w: atom is float, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}

	rv.SetFloat(f.AsFloat64())

	return nil
}

func (d *Decoder) setBytes(rv reflect.Value, n int) error {
	payload, err := d.readBytesPayload(n)
	if err != nil {
		return err
	}

	switch { //nolint:exhaustive
	case rv.Kind() == reflect.String:
		if !utf8.Valid(payload) {
			return fmt.Errorf("%w", poterr.ErrInvalidUTF8)
		}

		rv.SetString(string(payload))

		return nil
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		rv.SetBytes(payload)

		return nil
	default:
		return fmt.Errorf("%w: atom is bytes, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}
}

func (d *Decoder) decodeSequenceInto(rv reflect.Value, count int) error {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice:
		if err := d.bgt.charge(uint64(count) * uint64(rv.Type().Elem().Size())); err != nil {
			return err
		}

		slice := reflect.MakeSlice(rv.Type(), count, count)

		for i := range count {
			if err := d.decodeReflect(slice.Index(i)); err != nil {
				return err
			}
		}

		rv.Set(slice)

		return nil
	case reflect.Array:
		if rv.Len() != count {
			return fmt.Errorf("%w: sequence has %d elements, array target has %d", poterr.ErrUnexpectedKind, count, rv.Len())
		}

		for i := range count {
			if err := d.decodeReflect(rv.Index(i)); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: atom is sequence, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}
}

func (d *Decoder) decodeMapInto(rv reflect.Value, pairCount int) error {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Struct:
		return d.decodeStructBody(rv, pairCount, false)
	case reflect.Map:
		return d.decodeMapBody(rv, pairCount, false)
	default:
		return fmt.Errorf("%w: atom is map, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}
}

func (d *Decoder) decodeDynamicMapInto(rv reflect.Value) error {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Struct:
		return d.decodeStructBody(rv, -1, true)
	case reflect.Map:
		return d.decodeMapBody(rv, -1, true)
	default:
		return fmt.Errorf("%w: atom is dynamic map, target is %s", poterr.ErrUnexpectedKind, rv.Kind())
	}
}

// nextIsDynamicEnd reads the next atom header and reports whether it is
// the DynamicEnd terminator; if not, it returns the header for the caller
// to dispatch as a key.
func (d *Decoder) nextIsDynamicEnd() (atom.Kind, uint64, bool, error) {
	kind, arg, err := atom.ReadHeader(d.r)
	if err != nil {
		return 0, 0, false, err
	}

	if kind == atom.KindSpecial && atom.SpecialKind(arg) == atom.SpecialDynamicEnd {
		return 0, 0, true, nil
	}

	return kind, arg, false, nil
}

func (d *Decoder) decodeMapBody(rv reflect.Value, pairCount int, dynamic bool) error {
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	}

	keyType := rv.Type().Key()
	valType := rv.Type().Elem()

	if keyType.Kind() != reflect.String {
		return fmt.Errorf("%w: map keys must be strings", poterr.ErrMessage)
	}

	emit := func() error {
		name, err := d.decodeMapKey()
		if err != nil {
			return err
		}

		val := reflect.New(valType).Elem()
		if err := d.decodeReflect(val); err != nil {
			return err
		}

		rv.SetMapIndex(reflect.ValueOf(name), val)

		return nil
	}

	if dynamic {
		for {
			kind, arg, done, err := d.nextIsDynamicEnd()
			if err != nil {
				return err
			}

			if done {
				return nil
			}

			name, err := d.resolveKeyGivenHeader(kind, arg)
			if err != nil {
				return err
			}

			val := reflect.New(valType).Elem()
			if err := d.decodeReflect(val); err != nil {
				return err
			}

			rv.SetMapIndex(reflect.ValueOf(name), val)
		}
	}

	for range pairCount {
		if err := emit(); err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeStructBody(rv reflect.Value, pairCount int, dynamic bool) error {
	fields := exportedFields(rv.Type())
	byName := fieldsByName(rv, fields)

	handle := func(name string) error {
		fv, ok := byName[name]
		if !ok {
			return d.skipValue()
		}

		return d.decodeReflect(fv)
	}

	if dynamic {
		for {
			kind, arg, done, err := d.nextIsDynamicEnd()
			if err != nil {
				return err
			}

			if done {
				return nil
			}

			name, err := d.resolveKeyGivenHeader(kind, arg)
			if err != nil {
				return err
			}

			if err := handle(name); err != nil {
				return err
			}
		}
	}

	for range pairCount {
		name, err := d.decodeMapKey()
		if err != nil {
			return err
		}

		if err := handle(name); err != nil {
			return err
		}
	}

	return nil
}

// fieldsByName resolves each struct field (including flattened `inline`
// fields) to its addressable reflect.Value, keyed by wire name.
func fieldsByName(rv reflect.Value, fields []structField) map[string]reflect.Value {
	out := make(map[string]reflect.Value)

	for _, f := range fields {
		fv := rv.FieldByIndex(f.field.Index)

		if f.inline {
			for k, v := range fieldsByName(fv, exportedFields(f.field.Type)) {
				out[k] = v
			}

			continue
		}

		out[f.name] = fv
	}

	return out
}

// decodeMapKey reads a Symbol atom and resolves it to a name — the only
// legal key shape this codec emits.
func (d *Decoder) decodeMapKey() (string, error) {
	kind, arg, err := atom.ReadHeader(d.r)
	if err != nil {
		return "", err
	}

	return d.resolveKeyGivenHeader(kind, arg)
}

func (d *Decoder) resolveKeyGivenHeader(kind atom.Kind, arg uint64) (string, error) {
	if kind != atom.KindSymbol {
		return "", fmt.Errorf("%w: map key must be a symbol atom, got %s", poterr.ErrUnexpectedKind, kind)
	}

	return readSymbol(d.r, d.names, arg, d.bgt, &d.scratch)
}
