// Package provider defines the value-provider abstraction the binder reads
// from: a uniform view over "is there a value under this name, and what is
// it", with optional dotted-path support and full-entry enumeration.
//
// Key pieces:
//   - NamedValueProvider / IndexedValueProvider capability interfaces
//   - MapValueProvider over an immutable map[string]any (the base case and
//     the nested-resolution target)
//   - Resolve: dotted-path navigation through chained providers
package provider
