package bind

import (
	"sync"

	"github.com/rs/zerolog"

	"map-binder/descriptor"
	"map-binder/provider"
)

// Config controls binding behavior.
type Config struct {
	// AcceptMissingNullableAsNull binds missing values for nullable
	// parameters to nil (with a DefaultValueUsed warning) instead of
	// reporting them as missing required parameters.
	AcceptMissingNullableAsNull bool
	// Logger receives diagnostics from plan execution. Nop by default.
	Logger zerolog.Logger
}

// DefaultConfig returns the default binding configuration.
func DefaultConfig() Config {
	return Config{
		AcceptMissingNullableAsNull: true,
		Logger:                      zerolog.Nop(),
	}
}

// Binder builds, caches and executes construction plans. A Binder owns its
// plan cache; share one Binder to share memoized plans.
type Binder struct {
	config Config
	cache  *PlanCache
	exec   executor
}

// New creates a Binder with an empty plan cache.
func New(config Config) *Binder {
	return &Binder{
		config: config,
		cache:  NewPlanCache(),
		exec:   executor{log: config.Logger},
	}
}

// Plan returns the memoized construction plan for the combination of target
// descriptor, callable and source. Equal inputs yield the identical plan
// instance. The callable must be owned by the descriptor.
func (b *Binder) Plan(
	desc descriptor.TypeDescriptor,
	callable descriptor.Callable,
	source provider.NamedValueProvider,
) (*ConstructionPlan, error) {
	return b.cache.GetOrBuild(desc, callable, source, b.config.AcceptMissingNullableAsNull,
		func() (*ConstructionPlan, error) {
			return buildPlan(desc, callable, source, b.config.AcceptMissingNullableAsNull)
		})
}

// Execute materializes an instance from a plan. Plans with errors are
// refused with ErrPlanNotExecutable.
func (b *Binder) Execute(plan *ConstructionPlan) (any, error) {
	return b.exec.execute(plan)
}

// Bind is Plan followed by Execute.
func (b *Binder) Bind(
	desc descriptor.TypeDescriptor,
	callable descriptor.Callable,
	source provider.NamedValueProvider,
) (any, error) {
	plan, err := b.Plan(desc, callable, source)
	if err != nil {
		return nil, err
	}

	return b.Execute(plan)
}

// CacheLen reports how many plans the binder has memoized.
func (b *Binder) CacheLen() int { return b.cache.Len() }

var (
	defaultBinder     *Binder
	defaultBinderOnce sync.Once
)

// Default returns the process-wide binder: one shared plan cache,
// initialized on first use and alive for the process lifetime.
func Default() *Binder {
	defaultBinderOnce.Do(func() {
		defaultBinder = New(DefaultConfig())
	})

	return defaultBinder
}

// BuildPlan builds (or returns the memoized) plan with the default binder.
func BuildPlan(
	desc descriptor.TypeDescriptor,
	callable descriptor.Callable,
	source provider.NamedValueProvider,
) (*ConstructionPlan, error) {
	return Default().Plan(desc, callable, source)
}

// Execute runs plan with the default binder.
func Execute(plan *ConstructionPlan) (any, error) {
	return Default().Execute(plan)
}
