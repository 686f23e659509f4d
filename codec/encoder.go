package codec

import (
	"fmt"
	"reflect"

	"github.com/khonsulabs/pot/atom"
	"github.com/khonsulabs/pot/bridge"
	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/potio"
	"github.com/khonsulabs/pot/symbol"
	"github.com/khonsulabs/pot/value"
)

// Encoder walks a Go value — via reflection, the value.Value dynamic tree,
// or the bridge.Marshaler escape hatch — and emits it as one Pot document
// onto a potio.Sink.
type Encoder struct {
	sink     potio.Sink
	registry *bridge.Registry
	table    *symbol.Table
	names    interner
}

// NewEncoder creates an Encoder writing through sink, using a fresh
// per-document symbol table.
func NewEncoder(sink potio.Sink, cfg *Config) *Encoder {
	table := symbol.NewTable()

	return &Encoder{
		sink:     sink,
		registry: cfg.BridgeRegistry,
		table:    table,
		names:    table,
	}
}

// NewPersistentEncoder creates an Encoder whose symbol table is shared
// across documents via m: names introduced in one Encode call remain
// interned for subsequent calls sharing m.
func NewPersistentEncoder(sink potio.Sink, cfg *Config, m *symbol.PersistentMap) *Encoder {
	return &Encoder{
		sink:     sink,
		registry: cfg.BridgeRegistry,
		table:    symbol.NewTable(),
		names:    pushInterner{m: m},
	}
}

// Encode writes v as a complete Pot document: header prefix, then one
// atom transitively containing v. Each call starts with an empty
// per-document symbol table; NewPersistentEncoder's shared table is
// unaffected, since it's reached through names, not table.
func (e *Encoder) Encode(v any) error {
	e.table.Reset()

	if err := writeHeaderPrefix(e.sink); err != nil {
		return err
	}

	return e.encodeAny(v)
}

func (e *Encoder) encodeAny(v any) error {
	if v == nil {
		return writeSpecial(e.sink, atom.SpecialNone)
	}

	if vv, ok := v.(value.Value); ok {
		return e.encodeValue(vv)
	}

	if result, handled, err := e.registry.Marshal(v); handled {
		if err != nil {
			return err
		}

		return e.encodeValue(result)
	}

	return e.encodeReflect(reflect.ValueOf(v))
}

func (e *Encoder) encodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNone:
		return writeSpecial(e.sink, atom.SpecialNone)
	case value.KindUnit:
		return writeSpecial(e.sink, atom.SpecialUnit)
	case value.KindBool:
		b, _ := v.AsBool()
		return e.encodeBool(b)
	case value.KindInteger:
		n, _ := v.AsInteger()
		return writeInt(e.sink, n)
	case value.KindFloat:
		f, _ := v.AsFloat()
		return writeFloat(e.sink, f)
	case value.KindBytes:
		b, _ := v.AsBytes()
		return writeBytesAtom(e.sink, b)
	case value.KindString:
		s, _ := v.AsString()
		return writeBytesAtom(e.sink, []byte(s))
	case value.KindSequence:
		items, _ := v.AsSequence()
		return e.encodeValueSequence(items)
	case value.KindMappings:
		pairs, _ := v.AsMappings()
		return e.encodeValueMappings(pairs)
	case value.KindNamed:
		n, _ := v.AsNamed()
		return e.encodeNamed(n.Name, func() error { return e.encodeValue(n.Value) })
	default:
		return fmt.Errorf("%w: value kind %s", poterr.ErrUnexpectedKind, v.Kind())
	}
}

func (e *Encoder) encodeBool(b bool) error {
	if b {
		return writeSpecial(e.sink, atom.SpecialTrue)
	}

	return writeSpecial(e.sink, atom.SpecialFalse)
}

func (e *Encoder) encodeValueSequence(items []value.Value) error {
	if err := writeSequenceHeader(e.sink, len(items)); err != nil {
		return err
	}

	for _, item := range items {
		if err := e.encodeValue(item); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeValueMappings(pairs []value.Mapping) error {
	if err := writeMapHeader(e.sink, len(pairs)); err != nil {
		return err
	}

	for _, pair := range pairs {
		if err := e.encodeValue(pair.Key); err != nil {
			return err
		}

		if err := e.encodeValue(pair.Value); err != nil {
			return err
		}
	}

	return nil
}

// encodeNamed frames an enum-like variant: a Named marker, the variant
// name as a symbol, then the payload written by emitPayload.
func (e *Encoder) encodeNamed(name string, emitPayload func() error) error {
	if err := writeNamedMarker(e.sink); err != nil {
		return err
	}

	if err := writeSymbol(e.sink, e.names, name); err != nil {
		return err
	}

	return emitPayload()
}

func (e *Encoder) encodeReflect(rv reflect.Value) error { //nolint:cyclop
	if !rv.IsValid() {
		return writeSpecial(e.sink, atom.SpecialNone)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return e.encodeBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return writeInt(e.sink, atom.FromInt64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return writeInt(e.sink, atom.FromUint64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return writeFloat(e.sink, atom.FromFloat64(rv.Float()))
	case reflect.String:
		return writeBytesAtom(e.sink, []byte(rv.String()))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return writeBytesAtom(e.sink, rv.Bytes())
		}

		if rv.IsNil() {
			return writeSpecial(e.sink, atom.SpecialNone)
		}

		return e.encodeReflectSequence(rv)
	case reflect.Array:
		return e.encodeReflectSequence(rv)
	case reflect.Map:
		return e.encodeReflectMap(rv)
	case reflect.Struct:
		return e.encodeStruct(rv)
	case reflect.Ptr:
		if rv.IsNil() {
			return writeSpecial(e.sink, atom.SpecialNone)
		}

		return e.encodeReflect(rv.Elem())
	case reflect.Interface:
		if rv.IsNil() {
			return writeSpecial(e.sink, atom.SpecialNone)
		}

		return e.encodeAny(rv.Interface())
	case reflect.Chan:
		// Sequences must carry a known length; a channel has none, and
		// the dynamic-length framing is reserved for maps.
		return poterr.ErrSequenceSizeMustBeKnown
	default:
		return fmt.Errorf("%w: unsupported Go kind %s", poterr.ErrMessage, rv.Kind())
	}
}

func (e *Encoder) encodeReflectSequence(rv reflect.Value) error {
	n := rv.Len()

	if err := writeSequenceHeader(e.sink, n); err != nil {
		return err
	}

	for i := range n {
		if err := e.encodeReflect(rv.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

// encodeReflectMap encodes a Go map as a Map atom. Keys must be strings —
// a map key that repeats is, like a struct field name, a structural
// identifier, so it is always symbol-interned rather than written as a
// Bytes atom.
func (e *Encoder) encodeReflectMap(rv reflect.Value) error {
	if rv.IsNil() {
		return writeSpecial(e.sink, atom.SpecialNone)
	}

	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: map keys must be strings", poterr.ErrMessage)
	}

	keys := rv.MapKeys()
	if err := writeMapHeader(e.sink, len(keys)); err != nil {
		return err
	}

	for _, k := range keys {
		if err := writeSymbol(e.sink, e.names, k.String()); err != nil {
			return err
		}

		if err := e.encodeReflect(rv.MapIndex(k)); err != nil {
			return err
		}
	}

	return nil
}

// encodeStruct encodes an exported-field struct as a Map keyed by field
// name symbols. A field tagged `pot:"-"` is skipped; a field tagged
// `pot:",inline"` has its own fields flattened into the enclosing map
// rather than nested as a sub-map.
func (e *Encoder) encodeStruct(rv reflect.Value) error {
	fields := exportedFields(rv.Type())

	var countPairs func([]structField) int
	countPairs = func(fs []structField) int {
		n := 0
		for _, f := range fs {
			if f.inline {
				n += countPairs(exportedFields(f.field.Type))
			} else {
				n++
			}
		}

		return n
	}

	pairCount := countPairs(fields)

	if err := writeMapHeader(e.sink, pairCount); err != nil {
		return err
	}

	return e.encodeStructFields(rv, fields)
}

func (e *Encoder) encodeStructFields(rv reflect.Value, fields []structField) error {
	for _, f := range fields {
		fv := rv.FieldByIndex(f.field.Index)

		if f.inline {
			if err := e.encodeStructFields(fv, exportedFields(f.field.Type)); err != nil {
				return err
			}

			continue
		}

		if err := writeSymbol(e.sink, e.names, f.name); err != nil {
			return err
		}

		if err := e.encodeReflect(fv); err != nil {
			return err
		}
	}

	return nil
}
