package provider

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNoNestedProvider is returned when dotted resolution reaches an
// intermediate value that cannot act as a nested value provider.
var ErrNoNestedProvider = errors.New("no known value provider for nested value")

// Entry is a single named value exposed by a provider.
type Entry struct {
	Name  string
	Value any
}

// NamedValueProvider is a uniform view over name-addressed data, such as a
// decoded request body or a flattened configuration layer.
//
// Implementations must be comparable through Equal and Hash: provider
// identity participates in the plan-cache key, so logically equal providers
// have to report equal and hash identically.
type NamedValueProvider interface {
	// ExistsByName reports whether a value exists under name. The requested
	// type is advisory; providers may use it to disambiguate lookups.
	ExistsByName(name string, want reflect.Type) bool

	// ValueByName returns the value stored under name. The second result is
	// false when the name is absent.
	ValueByName(name string, want reflect.Type) (any, bool)

	// Entries enumerates all known (name, value) pairs in a stable order.
	// Meaningful only when KnowsEntries reports true.
	Entries() []Entry

	// SupportsDottedNames reports whether a single lookup may match a
	// multi-segment dotted name.
	SupportsDottedNames() bool

	// KnowsEntries reports whether Entries is a complete enumeration rather
	// than empty or partial.
	KnowsEntries() bool

	// Equal reports whether the other provider exposes the same data.
	Equal(other NamedValueProvider) bool

	// Hash returns a stable hash consistent with Equal.
	Hash() uint64
}

// IndexedValueProvider is the positional counterpart of NamedValueProvider.
// No concrete implementation ships with this module; the interface exists so
// index-addressed sources can participate in the same binding pipeline.
type IndexedValueProvider interface {
	ExistsByIndex(i int, want reflect.Type) bool
	ValueByIndex(i int, want reflect.Type) (any, bool)
	Len() int
}

// FromValue returns a provider view of v. It accepts values that already are
// providers and maps with string keys; anything else fails with
// ErrNoNestedProvider.
func FromValue(v any) (NamedValueProvider, error) {
	switch src := v.(type) {
	case NamedValueProvider:
		return src, nil
	case map[string]any:
		return NewMapValueProvider(src), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %T", ErrNoNestedProvider, v)
	}

	values := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		values[iter.Key().String()] = iter.Value().Interface()
	}

	return NewMapValueProvider(values), nil
}
