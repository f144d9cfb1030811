package descriptor

import "reflect"

// ParameterKind classifies a callable's formal parameters.
type ParameterKind int

const (
	// KindValue is a normal named parameter bound from provider data.
	KindValue ParameterKind = iota
	// KindReceiver is the implicit instance parameter of a factory method,
	// bound to the factory singleton.
	KindReceiver
	// KindExtension is an extension-style receiver; callables requiring one
	// can never serve as construction targets.
	KindExtension
)

// String returns a human-readable kind name.
func (k ParameterKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindReceiver:
		return "receiver"
	case KindExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Parameter identifies one formal parameter of a callable.
type Parameter struct {
	// Name is the declared parameter name. Required for value parameters.
	Name string
	// Index is the position in the callable's formal parameter list.
	Index int
	// Kind distinguishes value parameters from receivers.
	Kind ParameterKind
	// Type is the declared parameter type.
	Type reflect.Type
	// Nullable reports whether the declared type admits nil.
	Nullable bool
	// HasDefault reports whether the callable supplies its own default when
	// the parameter is omitted.
	HasDefault bool
}

// Property identifies one declared property of a target type.
type Property struct {
	// Name addresses the property in provider data.
	Name string
	// Type is the declared property type.
	Type reflect.Type
	// Nullable reports whether the declared type admits nil.
	Nullable bool
	// Mutable reports whether the property can be set after construction.
	Mutable bool
}

// Argument pairs a parameter with its resolved value.
type Argument struct {
	Parameter Parameter
	Value     any
}

// Callable is a constructor or factory function usable to build instances
// of a target type.
//
// Implementations must be comparable: callable identity participates in the
// plan-cache key.
type Callable interface {
	// Name identifies the callable for diagnostics.
	Name() string

	// Parameters lists the formal parameters in declaration order,
	// including any receiver.
	Parameters() []Parameter

	// Receiver returns the factory singleton when the callable is a factory
	// method, and false otherwise.
	Receiver() (any, bool)

	// Call invokes the callable with the bound arguments. When every
	// parameter is bound the arguments are applied positionally; otherwise
	// the callable fills omitted optional parameters with its own defaults.
	Call(args []Argument) (any, error)
}

// TypeDescriptor describes a construction target to the binder.
//
// Implementations must be comparable, for the same reason as Callable.
type TypeDescriptor interface {
	// TargetType is the type built instances will have (possibly behind a
	// pointer).
	TargetType() reflect.Type

	// Constructors lists the target's own constructor callables.
	Constructors() []Callable

	// Factories lists callables on the target's factory object, if any.
	Factories() []Callable

	// Properties lists declared properties in declaration order.
	Properties() []Property

	// Owns reports whether c is one of the descriptor's constructors or
	// factories. Plans may only be built for owned callables.
	Owns(c Callable) bool

	// Set assigns value to the named mutable property of instance.
	Set(instance any, name string, value any) error
}

// Nullable reports whether a type admits nil as a value.
func Nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}
