// Package descriptor abstracts type introspection for the binder: which
// constructors, factory functions and properties a target type exposes, and
// how runtime values compare against declared types.
//
// The binder consumes only the TypeDescriptor, Callable, Parameter and
// Property surfaces, so any type system able to answer those questions can
// sit behind them (including a code-generated descriptor table). The package
// ships one implementation built on reflect, covering Go structs with
// constructor functions and factory-object methods.
package descriptor
