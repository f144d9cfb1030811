package descriptor

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"map-binder/utils"
)

var (
	// ErrNotAFunction is returned when the provided callable value is not a
	// Go function.
	ErrNotAFunction = errors.New("provided callable is not a function")
	// ErrBadSignature is returned for result shapes other than (T) and
	// (T, error), and for variadic functions.
	ErrBadSignature = errors.New("callable must be non-variadic and return (T) or (T, error)")
	// ErrParameterNames is returned when the supplied names do not cover
	// the function's parameters one-to-one.
	ErrParameterNames = errors.New("parameter names do not match function arity")
	// ErrNoSuchMethod is returned when a factory lacks the requested method.
	ErrNoSuchMethod = errors.New("factory has no such method")
	// ErrMissingArgument is returned at call time for a parameter with
	// neither a binding nor a default.
	ErrMissingArgument = errors.New("no binding and no default for parameter")
	// ErrArgumentType is returned at call time when a bound value cannot be
	// applied to its parameter.
	ErrArgumentType = errors.New("argument does not fit parameter type")
)

// FuncCallable adapts a plain Go function (or a factory-object method) into
// a Callable. Go reflection does not retain parameter names, so callers
// supply them at registration; an empty name is rejected up front.
type FuncCallable struct {
	fn       reflect.Value
	name     string
	pkg      string
	params   []Parameter
	defaults map[string]any
	receiver any
	hasErr   bool
}

// NewFuncCallable inspects fn and builds a callable over it, naming its
// parameters in order. Supported signatures:
//
//	func(args...) T
//	func(args...) (T, error)
func NewFuncCallable(fn any, paramNames ...string) (*FuncCallable, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	}

	fnType := fnVal.Type()

	hasErr, err := parseResults(fnType)
	if err != nil {
		return nil, err
	}

	if fnType.NumIn() != len(paramNames) {
		return nil, fmt.Errorf("%w: %d names for %d parameters", ErrParameterNames, len(paramNames), fnType.NumIn())
	}

	params := make([]Parameter, 0, fnType.NumIn())

	for i := 0; i < fnType.NumIn(); i++ {
		if paramNames[i] == "" {
			return nil, fmt.Errorf("%w: parameter %d has an empty name", ErrParameterNames, i)
		}

		in := fnType.In(i)
		params = append(params, Parameter{
			Name:     paramNames[i],
			Index:    i,
			Kind:     KindValue,
			Type:     in,
			Nullable: Nullable(in),
		})
	}

	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))

	return &FuncCallable{
		fn:     fnVal,
		name:   name,
		pkg:    utils.Second(path.Split(alias)),
		params: params,
		hasErr: hasErr,
	}, nil
}

// NewFactoryCallable adapts the named method on the factory singleton. The
// resulting callable exposes a leading receiver parameter bound to factory.
func NewFactoryCallable(factory any, methodName string, paramNames ...string) (*FuncCallable, error) {
	method := reflect.ValueOf(factory).MethodByName(methodName)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %T.%s", ErrNoSuchMethod, factory, methodName)
	}

	c, err := NewFuncCallable(method.Interface(), paramNames...)
	if err != nil {
		return nil, err
	}

	params := make([]Parameter, 0, len(c.params)+1)
	params = append(params, Parameter{
		Index: 0,
		Kind:  KindReceiver,
		Type:  reflect.TypeOf(factory),
	})

	for _, p := range c.params {
		p.Index++
		params = append(params, p)
	}

	c.name = methodName
	c.pkg = reflect.TypeOf(factory).String()
	c.params = params
	c.receiver = factory

	return c, nil
}

// WithDefault marks the named parameter optional, to be filled with value
// whenever no binding is supplied. Unknown names panic: defaults are wired
// at registration time and a typo there is a programming error.
func (c *FuncCallable) WithDefault(name string, value any) *FuncCallable {
	for i := range c.params {
		if c.params[i].Name != name {
			continue
		}

		c.params[i].HasDefault = true

		if c.defaults == nil {
			c.defaults = make(map[string]any)
		}

		c.defaults[name] = value

		return c
	}

	panic("no parameter named " + name + " on " + c.name)
}

// Name returns the function's name as reported by the runtime, or the
// method name for factory callables.
func (c *FuncCallable) Name() string { return c.name }

// String renders the callable as package.Name.
func (c *FuncCallable) String() string {
	if c.pkg == "" {
		return c.name
	}

	return c.pkg + "." + c.name
}

// Parameters returns the formal parameters, receiver first for factory
// callables.
func (c *FuncCallable) Parameters() []Parameter {
	params := make([]Parameter, len(c.params))
	copy(params, c.params)

	return params
}

// Receiver returns the factory singleton for factory callables.
func (c *FuncCallable) Receiver() (any, bool) {
	return c.receiver, c.receiver != nil
}

// Call invokes the function. When every formal parameter is bound the
// arguments are applied positionally in declared order; otherwise the full
// argument vector is assembled by name with defaults filling the gaps.
func (c *FuncCallable) Call(args []Argument) (any, error) {
	in, err := c.argumentVector(args)
	if err != nil {
		return nil, err
	}

	out := c.fn.Call(in)
	if c.hasErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	return out[0].Interface(), nil
}

func (c *FuncCallable) argumentVector(args []Argument) ([]reflect.Value, error) {
	// The receiver is pre-bound inside the method value; only value
	// parameters occupy call slots.
	offset := 0
	if c.receiver != nil {
		offset = 1
	}

	in := make([]reflect.Value, c.fn.Type().NumIn())

	if len(args) == len(c.params) {
		for _, arg := range args {
			if arg.Parameter.Kind != KindValue {
				continue
			}

			v, err := c.argValue(arg.Parameter, arg.Value)
			if err != nil {
				return nil, err
			}

			in[arg.Parameter.Index-offset] = v
		}

		return in, nil
	}

	bound := make(map[string]any, len(args))
	for _, arg := range args {
		if arg.Parameter.Kind == KindValue {
			bound[arg.Parameter.Name] = arg.Value
		}
	}

	for _, param := range c.params {
		if param.Kind != KindValue {
			continue
		}

		value, ok := bound[param.Name]
		if !ok {
			if !param.HasDefault {
				return nil, fmt.Errorf("%w: %q of %s", ErrMissingArgument, param.Name, c.name)
			}

			value = c.defaults[param.Name]
		}

		v, err := c.argValue(param, value)
		if err != nil {
			return nil, err
		}

		in[param.Index-offset] = v
	}

	return in, nil
}

func (c *FuncCallable) argValue(param Parameter, value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(param.Type), nil
	}

	v := reflect.ValueOf(value)

	switch {
	case v.Type().AssignableTo(param.Type):
		return v, nil
	case v.Type().ConvertibleTo(param.Type):
		return v.Convert(param.Type), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s into %q of %s", ErrArgumentType, v.Type(), param.Name, c.name)
	}
}

func parseResults(fnType reflect.Type) (hasErr bool, err error) {
	if fnType.IsVariadic() {
		return false, fmt.Errorf("%w: variadic function", ErrBadSignature)
	}

	switch fnType.NumOut() {
	default:
		return false, fmt.Errorf("%w: %d results", ErrBadSignature, fnType.NumOut())

	case 1:
		return false, nil

	case 2:
		if !isError(fnType.Out(1)) {
			return false, fmt.Errorf("%w: second result is %s, not error", ErrBadSignature, fnType.Out(1))
		}

		return true, nil
	}
}

func isError(t reflect.Type) bool {
	return t.Implements(reflect.TypeOf((*error)(nil)).Elem())
}
