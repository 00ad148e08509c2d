// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the marketplace. It implements logic
// that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitionPolicy: a capability check mapping caller roles to the order
//     lifecycle operations they may drive
//
// Domain services coordinate between aggregates, implementing business logic
// that spans bounded contexts following Domain-Driven Design principles.
package services
