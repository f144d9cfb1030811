package bind

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"map-binder/descriptor"
)

// ErrPlanNotExecutable is returned when executing a plan that carries
// construction errors. Callers are expected to check HasErrors first.
var ErrPlanNotExecutable = errors.New("construction plan has errors and cannot be executed")

// executor materializes instances from validated plans.
type executor struct {
	log zerolog.Logger
}

// execute invokes the plan's callable with its parameter bindings and then
// applies the property bindings in order. The callable is never invoked for
// plans with errors. Call-time failures are logged and propagated wrapped.
func (e executor) execute(plan *ConstructionPlan) (any, error) {
	if plan.HasErrors() {
		return nil, fmt.Errorf("%w: %d failing targets on %s",
			ErrPlanNotExecutable, plan.ErrorCount(), plan.target)
	}

	args := make([]descriptor.Argument, len(plan.parameterBindings))
	for i, binding := range plan.parameterBindings {
		args[i] = descriptor.Argument{Parameter: binding.Parameter, Value: binding.Value}
	}

	instance, err := plan.callable.Call(args)
	if err != nil {
		e.log.Error().
			Err(err).
			Str("callable", plan.callable.Name()).
			Stringer("target", plan.target).
			Msg("constructor invocation failed")

		return nil, fmt.Errorf("invoking %s: %w", plan.callable.Name(), err)
	}

	for _, binding := range plan.propertyBindings {
		if err := plan.desc.Set(instance, binding.Property.Name, binding.Value); err != nil {
			e.log.Error().
				Err(err).
				Str("property", binding.Property.Name).
				Stringer("target", plan.target).
				Msg("property assignment failed")

			return nil, fmt.Errorf("setting %s: %w", binding.Property.Name, err)
		}
	}

	return instance, nil
}
