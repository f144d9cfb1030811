package bind

import (
	"reflect"
	"slices"

	"github.com/davecgh/go-spew/spew"

	"map-binder/descriptor"
	"map-binder/utils"
)

// ParameterBinding pairs a parameter with the value it will receive at
// invocation time.
type ParameterBinding struct {
	Parameter descriptor.Parameter
	Value     any
}

// PropertyBinding pairs a mutable property with the value its setter will
// receive after construction.
type PropertyBinding struct {
	Property descriptor.Property
	Value    any
}

// ConstructionPlan is the immutable result of matching a callable and a
// target's properties against a value provider. A plan is created once per
// cache key, never mutated afterwards, and safe to share across goroutines
// and across repeated binds with equal inputs.
type ConstructionPlan struct {
	desc     descriptor.TypeDescriptor
	target   reflect.Type
	callable descriptor.Callable

	parameterBindings []ParameterBinding
	propertyBindings  []PropertyBinding

	parameterErrors   []ParameterError
	parameterWarnings []ParameterWarning
	propertyErrors    []PropertyError
	propertyWarnings  []PropertyWarning

	nonmatching []string
}

// Descriptor returns the target's type descriptor.
func (p *ConstructionPlan) Descriptor() descriptor.TypeDescriptor { return p.desc }

// TargetType returns the type instances will be built for.
func (p *ConstructionPlan) TargetType() reflect.Type { return p.target }

// Callable returns the constructor or factory the plan invokes.
func (p *ConstructionPlan) Callable() descriptor.Callable { return p.callable }

// ParameterBindings returns the resolved parameter bindings in declaration
// order.
func (p *ConstructionPlan) ParameterBindings() []ParameterBinding {
	return slices.Clone(p.parameterBindings)
}

// PropertyBindings returns the resolved property bindings in
// property-declaration order.
func (p *ConstructionPlan) PropertyBindings() []PropertyBinding {
	return slices.Clone(p.propertyBindings)
}

// ParameterErrors returns all per-parameter errors.
func (p *ConstructionPlan) ParameterErrors() []ParameterError {
	return slices.Clone(p.parameterErrors)
}

// ParameterWarnings returns all per-parameter warnings.
func (p *ConstructionPlan) ParameterWarnings() []ParameterWarning {
	return slices.Clone(p.parameterWarnings)
}

// PropertyErrors returns all per-property errors.
func (p *ConstructionPlan) PropertyErrors() []PropertyError {
	return slices.Clone(p.propertyErrors)
}

// PropertyWarnings returns all per-property warnings.
func (p *ConstructionPlan) PropertyWarnings() []PropertyWarning {
	return slices.Clone(p.propertyWarnings)
}

// NonmatchingProviderEntries returns the sorted provider entry names that
// matched neither a parameter nor a property. Diagnostic only: likely
// caller typos or extraneous data.
func (p *ConstructionPlan) NonmatchingProviderEntries() []string {
	return slices.Clone(p.nonmatching)
}

// ErrorCount counts distinct targets with at least one error. A parameter
// that accrued two error kinds still counts once.
func (p *ConstructionPlan) ErrorCount() int {
	targets := make(map[string]struct{})
	for _, e := range p.parameterErrors {
		targets["param:"+e.Parameter.Name] = struct{}{}
	}

	for _, e := range p.propertyErrors {
		targets["prop:"+e.Property.Name] = struct{}{}
	}

	return len(targets)
}

// WarningCount counts distinct targets with at least one warning.
func (p *ConstructionPlan) WarningCount() int {
	targets := make(map[string]struct{})
	for _, w := range p.parameterWarnings {
		targets["param:"+w.Parameter.Name] = struct{}{}
	}

	for _, w := range p.propertyWarnings {
		targets["prop:"+w.Property.Name] = struct{}{}
	}

	return len(targets)
}

// HasErrors reports whether any error was recorded. Plans with errors are
// refused by Execute.
func (p *ConstructionPlan) HasErrors() bool {
	return !utils.IsEmpty(p.parameterErrors) || !utils.IsEmpty(p.propertyErrors)
}

// HasWarnings reports whether any warning was recorded.
func (p *ConstructionPlan) HasWarnings() bool {
	return !utils.IsEmpty(p.parameterWarnings) || !utils.IsEmpty(p.propertyWarnings)
}

// planDump renders plans deterministically for debugging.
var planDump = &spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Describe renders the full plan state for debugging and logs.
func (p *ConstructionPlan) Describe() string {
	return planDump.Sdump(struct {
		Target            string
		Callable          string
		ParameterBindings []ParameterBinding
		PropertyBindings  []PropertyBinding
		ParameterErrors   []ParameterError
		ParameterWarnings []ParameterWarning
		PropertyErrors    []PropertyError
		PropertyWarnings  []PropertyWarning
		Nonmatching       []string
	}{
		Target:            p.target.String(),
		Callable:          p.callable.Name(),
		ParameterBindings: p.parameterBindings,
		PropertyBindings:  p.propertyBindings,
		ParameterErrors:   p.parameterErrors,
		ParameterWarnings: p.parameterWarnings,
		PropertyErrors:    p.propertyErrors,
		PropertyWarnings:  p.propertyWarnings,
		Nonmatching:       p.nonmatching,
	})
}
