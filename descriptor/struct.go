package descriptor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotAStruct is returned when the target type is not a struct.
	ErrNotAStruct = errors.New("target type is not a struct")
	// ErrNotAPointer is returned when Set receives an instance that is not
	// a pointer to the target struct.
	ErrNotAPointer = errors.New("instance must be a pointer to the target struct")
	// ErrNoSuchProperty is returned by Set for unknown property names.
	ErrNoSuchProperty = errors.New("no property with this name")
	// ErrPropertyReadOnly is returned by Set for read-only properties.
	ErrPropertyReadOnly = errors.New("property is not settable")
	// ErrPropertyType is returned by Set when the value does not fit the
	// property's declared type.
	ErrPropertyType = errors.New("value does not fit property type")
)

// StructDescriptor is a TypeDescriptor over a Go struct type. Exported
// fields become properties. The `bind` struct tag adjusts enumeration:
//
//	Field string `bind:"name"`          // addressed as "name"
//	Field string `bind:"-"`             // skipped entirely
//	Field string `bind:"name,readonly"` // enumerated, never written
type StructDescriptor struct {
	target       reflect.Type
	constructors []Callable
	factories    []Callable
	properties   []Property
	fields       map[string]int
}

// ForStruct builds a descriptor for t (a struct type, possibly behind a
// pointer). Callables carrying a receiver register as factories, the rest
// as constructors.
func ForStruct(t reflect.Type, callables ...Callable) (*StructDescriptor, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotAStruct, t)
	}

	d := &StructDescriptor{
		target: t,
		fields: make(map[string]int),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, readonly, skip := parseBindTag(field)
		if skip {
			continue
		}

		d.properties = append(d.properties, Property{
			Name:     name,
			Type:     field.Type,
			Nullable: Nullable(field.Type),
			Mutable:  !readonly,
		})
		d.fields[name] = i
	}

	for _, c := range callables {
		if _, ok := c.Receiver(); ok {
			d.factories = append(d.factories, c)
		} else {
			d.constructors = append(d.constructors, c)
		}
	}

	return d, nil
}

func parseBindTag(field reflect.StructField) (name string, readonly, skip bool) {
	name = field.Name

	tag, ok := field.Tag.Lookup("bind")
	if !ok {
		return name, false, false
	}

	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return "", false, true
	}

	if parts[0] != "" {
		name = parts[0]
	}

	for _, opt := range parts[1:] {
		if opt == "readonly" {
			readonly = true
		}
	}

	return name, readonly, false
}

// TargetType returns the struct type instances are built for.
func (d *StructDescriptor) TargetType() reflect.Type { return d.target }

// Constructors returns the registered constructor callables.
func (d *StructDescriptor) Constructors() []Callable { return d.constructors }

// Factories returns the registered factory-method callables.
func (d *StructDescriptor) Factories() []Callable { return d.factories }

// Properties returns the enumerated properties in field-declaration order.
func (d *StructDescriptor) Properties() []Property {
	properties := make([]Property, len(d.properties))
	copy(properties, d.properties)

	return properties
}

// Owns reports whether c was registered on this descriptor.
func (d *StructDescriptor) Owns(c Callable) bool {
	for _, own := range d.constructors {
		if own == c {
			return true
		}
	}

	for _, own := range d.factories {
		if own == c {
			return true
		}
	}

	return false
}

// Set assigns value to the named mutable property. instance must be a
// pointer to the target struct; lossless conversions are applied when the
// value's type differs from the field's.
func (d *StructDescriptor) Set(instance any, name string, value any) error {
	idx, ok := d.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q on %s", ErrNoSuchProperty, name, d.target)
	}

	for _, prop := range d.properties {
		if prop.Name == name && !prop.Mutable {
			return fmt.Errorf("%w: %q on %s", ErrPropertyReadOnly, name, d.target)
		}
	}

	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Type() != d.target {
		return fmt.Errorf("%w: got %T", ErrNotAPointer, instance)
	}

	field := rv.Elem().Field(idx)

	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	v := reflect.ValueOf(value)

	switch {
	case v.Type().AssignableTo(field.Type()):
	case v.Type().ConvertibleTo(field.Type()):
		v = v.Convert(field.Type())
	default:
		return fmt.Errorf("%w: %s into %q (%s)", ErrPropertyType, v.Type(), name, field.Type())
	}

	field.Set(v)

	return nil
}
