package bind

import "map-binder/descriptor"

// ConstructionError is a terminal per-field condition. Any error on a plan
// blocks execution.
type ConstructionError int

const (
	// WrongType: the provider value's type cannot satisfy the declared type.
	WrongType ConstructionError = iota
	// CoercionFailed: a conversion to the declared type exists but could
	// lose information.
	CoercionFailed
	// NullForNonNullable: a nil value (or a missing value treated as nil)
	// hit a non-nullable declared type.
	NullForNonNullable
	// MissingProperty: a required property is absent from the target type.
	// Kept for taxonomy completeness; the matcher reports missing mutable
	// properties as warnings instead.
	MissingProperty
	// MissingRequiredParameter: no value and no default for a parameter
	// that needs one.
	MissingRequiredParameter
	// NonSettableProperty: the provider supplied a value for a read-only
	// property.
	NonSettableProperty
)

// String returns a human-readable error name.
func (e ConstructionError) String() string {
	switch e {
	case WrongType:
		return "wrong_type"
	case CoercionFailed:
		return "coercion_error"
	case NullForNonNullable:
		return "null_value_non_nullable_type"
	case MissingProperty:
		return "missing_property"
	case MissingRequiredParameter:
		return "missing_value_for_required_parameter"
	case NonSettableProperty:
		return "non_settable_property"
	default:
		return "unknown"
	}
}

// ConstructionWarning is an informational per-field condition. Warnings do
// not block execution.
type ConstructionWarning int

const (
	// MissingValueForSettableProperty: a mutable property got no value and
	// keeps its zero value.
	MissingValueForSettableProperty ConstructionWarning = iota
	// DefaultValueUsed: a missing nullable parameter was bound to nil under
	// the missing-as-null policy.
	DefaultValueUsed
)

// String returns a human-readable warning name.
func (w ConstructionWarning) String() string {
	switch w {
	case MissingValueForSettableProperty:
		return "missing_value_for_settable_property"
	case DefaultValueUsed:
		return "default_value_used_for_datatype"
	default:
		return "unknown"
	}
}

// ParameterError attaches an error to a specific parameter.
type ParameterError struct {
	Parameter descriptor.Parameter
	Error     ConstructionError
}

// ParameterWarning attaches a warning to a specific parameter.
type ParameterWarning struct {
	Parameter descriptor.Parameter
	Warning   ConstructionWarning
}

// PropertyError attaches an error to a specific property.
type PropertyError struct {
	Property descriptor.Property
	Error    ConstructionError
}

// PropertyWarning attaches a warning to a specific property.
type PropertyWarning struct {
	Property descriptor.Property
	Warning  ConstructionWarning
}
