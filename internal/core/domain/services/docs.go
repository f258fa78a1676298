// Package services provides domain services for the delivery coordination
// system. Domain services hold business logic that doesn't naturally belong
// to a single aggregate root.
//
// The package includes:
//   - CodeGenerator: produces single-use confirmation codes at booking time
package services
