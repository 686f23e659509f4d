package codec

import (
	"reflect"
	"strings"
)

// structField is one field of a struct being encoded/decoded: its name on
// the wire (the struct field name unless overridden by a `pot:"name"` tag)
// and whether it's flattened into the enclosing map via `pot:",inline"`.
type structField struct {
	field  reflect.StructField
	name   string
	inline bool
}

// exportedFields lists t's exported fields in declaration order, resolving
// `pot` struct tags. A field tagged `pot:"-"` is omitted entirely.
func exportedFields(t reflect.Type) []structField {
	fields := make([]structField, 0, t.NumField())

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag := f.Tag.Get("pot")
		if tag == "-" {
			continue
		}

		name, inline := parseTag(tag, f.Name)

		fields = append(fields, structField{field: f, name: name, inline: inline})
	}

	return fields
}

func parseTag(tag, fieldName string) (name string, inline bool) {
	if tag == "" {
		return fieldName, false
	}

	parts := strings.Split(tag, ",")
	name = parts[0]

	if name == "" {
		name = fieldName
	}

	for _, opt := range parts[1:] {
		if opt == "inline" {
			inline = true
		}
	}

	return name, inline
}
