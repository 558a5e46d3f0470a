// Package schema describes the shape of typed records: their fields,
// semantic types, nullability and primary key. A Descriptor is produced
// once by the record layer and shared, read-only, by every query built
// for that record type.
package schema

import (
	"fmt"

	"github.com/go-openapi/inflect"
)

// Type is the semantic type of a record field. It drives value
// equality, coercion of driver values during materialization, and
// nothing else; the database column type is the driver's concern.
type Type uint8

// Supported semantic types.
const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeUUID
	TypeDecimal
	TypeBytes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeBool:    "bool",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeDecimal: "decimal",
	TypeBytes:   "bytes",
}

// String returns the type name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", t)
}

// Valid reports if the type is one of the supported semantic types.
func (t Type) Valid() bool {
	return t > TypeInvalid && int(t) < len(typeNames)
}

// Field is the static metadata of a single record field.
type Field struct {
	Name     string
	Type     Type
	Nullable bool
	Key      bool
}

// Descriptor is the static metadata of a record type. It is immutable
// after construction and safe to share across goroutines.
type Descriptor struct {
	name   string
	table  string
	fields []Field
	index  map[string]int
	keys   []string
}

// NewDescriptor builds a descriptor for the named record type.
// Field order is preserved and is the order used for projections,
// payloads and diff output. The table name is derived from the type
// name (CamelCase to snake_case).
//
// At least one field must be marked as key; field names must be unique.
func NewDescriptor(name string, fields ...Field) (*Descriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("schema: descriptor requires a type name")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema: descriptor %q requires at least one field", name)
	}
	d := &Descriptor{
		name:   name,
		table:  inflect.Underscore(name),
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(d.fields, fields)
	for i, f := range d.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema: descriptor %q has an unnamed field at position %d", name, i)
		}
		if !f.Type.Valid() {
			return nil, fmt.Errorf("schema: field %q of %q has no semantic type", f.Name, name)
		}
		if _, ok := d.index[f.Name]; ok {
			return nil, fmt.Errorf("schema: duplicate field %q in descriptor %q", f.Name, name)
		}
		d.index[f.Name] = i
		if f.Key {
			d.keys = append(d.keys, f.Name)
		}
	}
	if len(d.keys) == 0 {
		return nil, fmt.Errorf("schema: descriptor %q requires at least one key field", name)
	}
	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on error. Intended
// for package-level descriptor variables.
func MustDescriptor(name string, fields ...Field) *Descriptor {
	d, err := NewDescriptor(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the record type name.
func (d *Descriptor) Name() string { return d.name }

// Table returns the table the record type maps to.
func (d *Descriptor) Table() string { return d.table }

// Fields returns a copy of the declared fields, in declaration order.
func (d *Descriptor) Fields() []Field {
	fs := make([]Field, len(d.fields))
	copy(fs, d.fields)
	return fs
}

// Field returns the field with the given name.
func (d *Descriptor) Field(name string) (Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Has reports if the descriptor declares the given field.
func (d *Descriptor) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Columns returns all field names in declaration order.
func (d *Descriptor) Columns() []string {
	cols := make([]string, len(d.fields))
	for i, f := range d.fields {
		cols[i] = f.Name
	}
	return cols
}

// Keys returns the primary-key field names in declaration order.
func (d *Descriptor) Keys() []string {
	ks := make([]string, len(d.keys))
	copy(ks, d.keys)
	return ks
}

// NumFields returns the number of declared fields.
func (d *Descriptor) NumFields() int { return len(d.fields) }
