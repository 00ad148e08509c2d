// Package kernel holds the primitives shared by every aggregate in the
// marketplace domain model.
//
// Today that is UUID, the identifier value object used for orders, products,
// feedback, and actors. It is immutable, comparable, and validates that it
// was produced by one of its constructors, so aggregates can reject
// zero-value identifiers during their own construction.
//
// Anything placed here must be free of dependencies on the aggregates
// themselves; the aggregate packages all import kernel, never the reverse.
package kernel
