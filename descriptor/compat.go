package descriptor

import (
	"reflect"
	"strconv"
)

// Compatibility is the verdict of checking a runtime value against a
// declared type.
type Compatibility int

const (
	// Incompatible means the value can never satisfy the declared type.
	Incompatible Compatibility = iota
	// Narrowing means a numeric conversion exists but may lose information.
	Narrowing
	// Widenable means a lossless numeric widening conversion exists.
	Widenable
	// Assignable means the value's type is assignable to the declared type.
	Assignable
	// Identical means the types match exactly.
	Identical
)

// String returns a human-readable verdict name.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case Assignable:
		return "assignable"
	case Widenable:
		return "widenable"
	case Narrowing:
		return "narrowing"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// Compatible reports whether the verdict allows binding without loss.
func (c Compatibility) Compatible() bool {
	return c >= Widenable
}

// CheckResult carries the verdict plus the types involved, for diagnostics.
type CheckResult struct {
	Compatibility Compatibility
	// ValueType is nil when the checked value was nil.
	ValueType    reflect.Type
	DeclaredType reflect.Type
}

// Check scores how a runtime value fits a declared type. A nil value is
// Assignable when the declared type admits nil and Incompatible otherwise;
// whether nil is acceptable at all is the caller's nullability decision.
func Check(declared reflect.Type, value any) CheckResult {
	res := CheckResult{DeclaredType: declared}

	if value == nil {
		if Nullable(declared) {
			res.Compatibility = Assignable
		}

		return res
	}

	vt := reflect.TypeOf(value)
	res.ValueType = vt

	switch {
	case vt == declared:
		res.Compatibility = Identical
	case vt.AssignableTo(declared):
		res.Compatibility = Assignable
	case isWidening(vt, declared):
		res.Compatibility = Widenable
	case isNumeric(vt.Kind()) && isNumeric(declared.Kind()):
		res.Compatibility = Narrowing
	default:
		res.Compatibility = Incompatible
	}

	return res
}

// Widen converts value to the declared type. Valid for any Compatible
// verdict; Widenable values are converted, the rest pass through.
func Widen(declared reflect.Type, value any) any {
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(declared) {
		return value
	}

	return v.Convert(declared).Interface()
}

func isNumeric(k reflect.Kind) bool {
	return isInteger(k) || isFloat(k)
}

func isInteger(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k)
}

func isSigned(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func kindBits(k reflect.Kind) int {
	switch k {
	default:
		return 0
	case reflect.Int, reflect.Uint:
		return strconv.IntSize
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 32
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 64
	}
}

// isWidening reports whether converting from one numeric kind to another
// can never lose information: same signedness into at least as many bits,
// unsigned into strictly wider signed, float32 into float64.
func isWidening(from, to reflect.Type) bool {
	f, t := from.Kind(), to.Kind()

	switch {
	default:
		return false
	case isSigned(f) && isSigned(t), isUnsigned(f) && isUnsigned(t):
		return kindBits(t) >= kindBits(f)
	case isUnsigned(f) && isSigned(t):
		return kindBits(t) > kindBits(f)
	case f == reflect.Float32 && t == reflect.Float64:
		return true
	}
}
