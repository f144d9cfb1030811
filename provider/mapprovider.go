package provider

import (
	"hash/fnv"
	"reflect"
	"sort"

	"github.com/davecgh/go-spew/spew"
)

// fingerprint produces a deterministic deep dump of arbitrary values: map
// keys are sorted (and spewed when not natively sortable) so equal maps
// always print identically.
var fingerprint = &spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// MapValueProvider is a NamedValueProvider backed by an immutable mapping
// from name to value. It is the base case of dotted resolution: nested maps
// encountered along a dotted path are wrapped as new MapValueProviders.
type MapValueProvider struct {
	values map[string]any
}

// NewMapValueProvider copies m into a new provider. The provider never
// mutates or exposes the copy, so instances are safe to share across
// goroutines and to use as cache keys.
func NewMapValueProvider(m map[string]any) *MapValueProvider {
	values := make(map[string]any, len(m))
	for k, v := range m {
		values[k] = v
	}

	return &MapValueProvider{values: values}
}

func (p *MapValueProvider) ExistsByName(name string, _ reflect.Type) bool {
	_, ok := p.values[name]
	return ok
}

func (p *MapValueProvider) ValueByName(name string, _ reflect.Type) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Entries returns all pairs sorted by name.
func (p *MapValueProvider) Entries() []Entry {
	entries := make([]Entry, 0, len(p.values))
	for name, value := range p.values {
		entries = append(entries, Entry{Name: name, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries
}

func (p *MapValueProvider) SupportsDottedNames() bool { return true }

func (p *MapValueProvider) KnowsEntries() bool { return true }

// Equal reports whether other is a MapValueProvider over an equal mapping.
func (p *MapValueProvider) Equal(other NamedValueProvider) bool {
	o, ok := other.(*MapValueProvider)
	if !ok {
		return false
	}

	return reflect.DeepEqual(p.values, o.values)
}

// Hash fingerprints the mapping with a deterministic deep dump, so two
// providers over equal maps hash identically regardless of how and when they
// were allocated.
func (p *MapValueProvider) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fingerprint.Sdump(p.values)))

	return h.Sum64()
}
