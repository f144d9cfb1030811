package bind

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"map-binder/descriptor"
	"map-binder/provider"
	"map-binder/utils"
)

var (
	// ErrCallableNotOwned: the callable is not one of the target's
	// constructors or factories. A configuration mistake, not a data issue.
	ErrCallableNotOwned = errors.New("callable does not belong to the target type")
	// ErrUnnamedParameter: value parameters must carry names.
	ErrUnnamedParameter = errors.New("callable has an unnamed value parameter")
	// ErrExtensionReceiver: callables requiring an implicit extension
	// receiver cannot be construction targets.
	ErrExtensionReceiver = errors.New("callable requires an extension receiver")
	// ErrNoReceiver: a receiver parameter appeared on a callable that has
	// no factory instance behind it.
	ErrNoReceiver = errors.New("receiver parameter on a non-factory callable")
)

// buildPlan matches callable's parameters and the target's properties
// against source, accumulating diagnostics instead of failing on the first
// mismatch. Hard failures (malformed callables, unowned callables) abort
// with an error; everything data-related lands on the plan.
func buildPlan(
	desc descriptor.TypeDescriptor,
	callable descriptor.Callable,
	source provider.NamedValueProvider,
	acceptMissingNullableAsNull bool,
) (*ConstructionPlan, error) {
	if !desc.Owns(callable) {
		return nil, fmt.Errorf("%w: %s on %s", ErrCallableNotOwned, callable.Name(), desc.TargetType())
	}

	b := &planBuilder{
		plan: &ConstructionPlan{
			desc:     desc,
			target:   desc.TargetType(),
			callable: callable,
		},
		source:        source,
		consumedNames: make(map[string]struct{}),
		consumedProps: make(map[string]struct{}),
		acceptMissing: acceptMissingNullableAsNull,
	}

	if err := b.bindParameters(); err != nil {
		return nil, err
	}

	b.bindProperties()
	b.collectNonmatching()

	return b.plan, nil
}

type planBuilder struct {
	plan   *ConstructionPlan
	source provider.NamedValueProvider

	// consumedNames tracks provider entry names that matched a parameter or
	// property; consumedProps tracks property names claimed by same-named
	// parameters.
	consumedNames map[string]struct{}
	consumedProps map[string]struct{}

	acceptMissing bool
}

func (b *planBuilder) bindParameters() error {
	for _, param := range b.plan.callable.Parameters() {
		switch param.Kind {
		case descriptor.KindReceiver:
			recv, ok := b.plan.callable.Receiver()
			if !ok {
				return fmt.Errorf("%w: %s", ErrNoReceiver, b.plan.callable.Name())
			}

			b.bindParameter(param, recv)

		case descriptor.KindExtension:
			return fmt.Errorf("%w: %s", ErrExtensionReceiver, b.plan.callable.Name())

		case descriptor.KindValue:
			if param.Name == "" {
				return fmt.Errorf("%w: parameter %d of %s", ErrUnnamedParameter, param.Index, b.plan.callable.Name())
			}

			b.bindValueParameter(param)
		}
	}

	return nil
}

func (b *planBuilder) bindValueParameter(param descriptor.Parameter) {
	if !b.source.ExistsByName(param.Name, param.Type) {
		switch {
		case param.HasDefault:
			// The callable applies its own default; nothing to bind, but
			// the same-named property must not be flagged missing later.
			b.consumedProps[param.Name] = struct{}{}

		case param.Nullable && b.acceptMissing:
			b.bindParameter(param, nil)
			b.consumedProps[param.Name] = struct{}{}
			b.plan.parameterWarnings = append(b.plan.parameterWarnings,
				ParameterWarning{Parameter: param, Warning: DefaultValueUsed})

		default:
			b.plan.parameterErrors = append(b.plan.parameterErrors,
				ParameterError{Parameter: param, Error: MissingRequiredParameter},
				ParameterError{Parameter: param, Error: NullForNonNullable})
		}

		return
	}

	value, _ := b.source.ValueByName(param.Name, param.Type)
	b.consumedNames[param.Name] = struct{}{}

	if value == nil {
		if !param.Nullable {
			b.plan.parameterErrors = append(b.plan.parameterErrors,
				ParameterError{Parameter: param, Error: NullForNonNullable})

			return
		}

		b.bindParameter(param, nil)
		b.consumedProps[param.Name] = struct{}{}

		return
	}

	switch descriptor.Check(param.Type, value).Compatibility {
	case descriptor.Incompatible:
		b.plan.parameterErrors = append(b.plan.parameterErrors,
			ParameterError{Parameter: param, Error: WrongType})

	case descriptor.Narrowing:
		b.plan.parameterErrors = append(b.plan.parameterErrors,
			ParameterError{Parameter: param, Error: CoercionFailed})

	default:
		b.bindParameter(param, descriptor.Widen(param.Type, value))
		b.consumedProps[param.Name] = struct{}{}
	}
}

func (b *planBuilder) bindParameter(param descriptor.Parameter, value any) {
	b.plan.parameterBindings = append(b.plan.parameterBindings,
		ParameterBinding{Parameter: param, Value: value})
}

func (b *planBuilder) bindProperties() {
	for _, prop := range b.plan.desc.Properties() {
		if _, claimed := b.consumedProps[prop.Name]; claimed {
			continue
		}

		if !prop.Mutable {
			// A matching entry did address something; it just cannot be
			// applied. Without one there is nothing to report.
			if b.source.ExistsByName(prop.Name, prop.Type) {
				b.consumedNames[prop.Name] = struct{}{}
				b.plan.propertyErrors = append(b.plan.propertyErrors,
					PropertyError{Property: prop, Error: NonSettableProperty})
			}

			continue
		}

		b.bindMutableProperty(prop)
	}
}

func (b *planBuilder) bindMutableProperty(prop descriptor.Property) {
	if !b.source.ExistsByName(prop.Name, prop.Type) {
		b.plan.propertyWarnings = append(b.plan.propertyWarnings,
			PropertyWarning{Property: prop, Warning: MissingValueForSettableProperty})

		return
	}

	value, _ := b.source.ValueByName(prop.Name, prop.Type)
	b.consumedNames[prop.Name] = struct{}{}

	if value == nil {
		if !prop.Nullable {
			b.plan.propertyErrors = append(b.plan.propertyErrors,
				PropertyError{Property: prop, Error: NullForNonNullable})

			return
		}

		b.plan.propertyBindings = append(b.plan.propertyBindings,
			PropertyBinding{Property: prop, Value: nil})

		return
	}

	switch descriptor.Check(prop.Type, value).Compatibility {
	case descriptor.Incompatible:
		b.plan.propertyErrors = append(b.plan.propertyErrors,
			PropertyError{Property: prop, Error: WrongType})

	case descriptor.Narrowing:
		b.plan.propertyErrors = append(b.plan.propertyErrors,
			PropertyError{Property: prop, Error: CoercionFailed})

	default:
		b.plan.propertyBindings = append(b.plan.propertyBindings,
			PropertyBinding{Property: prop, Value: descriptor.Widen(prop.Type, value)})
	}
}

// collectNonmatching records the candidate incoming names (first segment of
// each entry name) that matched nothing.
func (b *planBuilder) collectNonmatching() {
	if !b.source.KnowsEntries() {
		return
	}

	seen := make(map[string]struct{})

	var names []string

	for _, entry := range b.source.Entries() {
		head, _ := utils.Unpack2(strings.SplitN(entry.Name, ".", 2))
		if _, dup := seen[head]; dup {
			continue
		}

		seen[head] = struct{}{}

		if _, consumed := b.consumedNames[head]; consumed {
			continue
		}

		names = append(names, head)
	}

	sort.Strings(names)

	b.plan.nonmatching = names
}
