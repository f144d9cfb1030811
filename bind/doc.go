// Package bind matches a target type's callable parameters and declared
// properties against a value provider, producing an immutable, cached
// construction plan that can be executed to build an instance.
//
// Binding pipeline:
//  1. Describe the target (descriptor package) and pick a callable
//  2. Plan: match parameters and properties against the provider,
//     accumulating per-field errors/warnings and nonmatching entry names
//  3. Inspect HasErrors/HasWarnings, then Execute the plan
//
// Plans are memoized per (descriptor, target type, callable, provider,
// policy) key for the life of the binder, so repeated binds against an
// unchanged shape/source combination reuse prior analysis.
package bind
