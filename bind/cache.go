package bind

import (
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"map-binder/descriptor"
	"map-binder/provider"
)

// cacheKey identifies one (target, callable, provider, policy) combination.
// Providers are bucketed by hash and disambiguated with Equal inside the
// bucket, so logically equal but separately allocated providers land on the
// same entry.
type cacheKey struct {
	desc          descriptor.TypeDescriptor
	target        reflect.Type
	callable      descriptor.Callable
	providerHash  uint64
	acceptMissing bool
}

type cacheEntry struct {
	// flightID is unique per entry, making singleflight collapse exact.
	flightID string
	source   provider.NamedValueProvider
	plan     atomic.Pointer[ConstructionPlan]
}

// PlanCache memoizes construction plans. It is unbounded by design: entries
// persist for the cache's lifetime on the assumption that a process sees a
// finite set of (type, callable, source shape) combinations. Concurrent
// first requests for the same key collapse to a single build, and equal
// keys always observe the identical plan instance.
type PlanCache struct {
	mu      sync.RWMutex
	entries map[cacheKey][]*cacheEntry
	nextID  uint64
	group   singleflight.Group
}

// NewPlanCache creates an empty cache.
func NewPlanCache() *PlanCache {
	return &PlanCache{entries: make(map[cacheKey][]*cacheEntry)}
}

// GetOrBuild returns the memoized plan for the combination, invoking build
// at most once per key under concurrent access. Build failures are not
// cached; they are deterministic configuration mistakes and simply repeat.
func (c *PlanCache) GetOrBuild(
	desc descriptor.TypeDescriptor,
	callable descriptor.Callable,
	source provider.NamedValueProvider,
	acceptMissing bool,
	build func() (*ConstructionPlan, error),
) (*ConstructionPlan, error) {
	key := cacheKey{
		desc:          desc,
		target:        desc.TargetType(),
		callable:      callable,
		providerHash:  source.Hash(),
		acceptMissing: acceptMissing,
	}

	entry := c.entry(key, source)
	if plan := entry.plan.Load(); plan != nil {
		return plan, nil
	}

	result, err, _ := c.group.Do(entry.flightID, func() (any, error) {
		if plan := entry.plan.Load(); plan != nil {
			return plan, nil
		}

		plan, err := build()
		if err != nil {
			return nil, err
		}

		entry.plan.Store(plan)

		return plan, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*ConstructionPlan), nil
}

// entry finds the cache slot for the key, creating it when absent.
func (c *PlanCache) entry(key cacheKey, source provider.NamedValueProvider) *cacheEntry {
	c.mu.RLock()
	for _, e := range c.entries[key] {
		if e.source.Equal(source) {
			c.mu.RUnlock()
			return e
		}
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries[key] {
		if e.source.Equal(source) {
			return e
		}
	}

	c.nextID++
	e := &cacheEntry{
		flightID: strconv.FormatUint(c.nextID, 10),
		source:   source,
	}
	c.entries[key] = append(c.entries[key], e)

	return e
}

// Len reports how many plan slots the cache holds.
func (c *PlanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, bucket := range c.entries {
		total += len(bucket)
	}

	return total
}
