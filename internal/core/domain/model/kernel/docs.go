// Package kernel provides core domain primitives shared across the delivery
// coordination domain model.
//
// The package currently contains UUID, an immutable value object for unique
// identifiers, used to identify outbox notifications. Delivery records are
// identified by store-assigned monotonic identifiers and live in the delivery
// package.
//
// Primitives here enforce their own validation rules so that domain objects
// built on top of them are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
