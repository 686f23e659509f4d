package codec

import (
	"fmt"
	"reflect"

	"github.com/khonsulabs/pot/bridge"
	"github.com/khonsulabs/pot/poterr"
	"github.com/khonsulabs/pot/potio"
	"github.com/khonsulabs/pot/symbol"
	"github.com/khonsulabs/pot/value"
)

// Decoder reads one Pot document off a potio.Reader, resolving symbols,
// enforcing the allocation budget, and reconstructing either a concrete Go
// value (via reflection or bridge.Unmarshaler) or the dynamic value.Value
// tree.
type Decoder struct {
	r        potio.Reader
	registry *bridge.Registry
	table    *symbol.Table
	names    resolver
	bgt      *budget
	scratch  []byte
}

// NewDecoder creates a Decoder reading from r, with a fresh per-document
// symbol table.
func NewDecoder(r potio.Reader, cfg *Config) *Decoder {
	table := symbol.NewTable()

	return &Decoder{
		r:        r,
		registry: cfg.BridgeRegistry,
		table:    table,
		names:    tableResolver{t: table},
		bgt:      newBudget(cfg.AllocationBudget),
	}
}

// NewPersistentDecoder creates a Decoder whose symbol table is shared
// across documents via m.
func NewPersistentDecoder(r potio.Reader, cfg *Config, m *symbol.PersistentMap) *Decoder {
	return &Decoder{
		r:        r,
		registry: cfg.BridgeRegistry,
		table:    symbol.NewTable(),
		names:    persistentResolver{m: m},
		bgt:      newBudget(cfg.AllocationBudget),
	}
}

// DecodeInto reads one document and stores it into target, which must be a
// non-nil pointer. It resets the allocation budget as if freshly
// constructed, per spec.md's "reset per top-level decode".
func (d *Decoder) DecodeInto(target any, budgetN uint64, batch bool) error {
	d.bgt = newBudget(budgetN)
	d.table.Reset()

	if err := readHeaderPrefix(d.r); err != nil {
		return err
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer", poterr.ErrMessage)
	}

	if err := d.decodeTop(rv.Elem()); err != nil {
		return err
	}

	if !batch {
		if rem := d.r.Remaining(); rem > 0 {
			return fmt.Errorf("%w: %d bytes", poterr.ErrTrailingBytes, rem)
		}
	}

	return nil
}

func (d *Decoder) decodeTop(rv reflect.Value) error {
	if rv.Type() == reflect.TypeOf(value.Value{}) {
		v, err := d.decodeValue()
		if err != nil {
			return err
		}

		rv.Set(reflect.ValueOf(v))

		return nil
	}

	if rv.CanAddr() {
		target := rv.Addr().Interface()

		if _, ok := target.(bridge.Unmarshaler); ok {
			return d.decodeViaUnmarshaler(target)
		}

		if d.registry.HasUnmarshaler(rv.Type()) {
			return d.decodeViaUnmarshaler(target)
		}
	}

	return d.decodeReflect(rv)
}
