// Package delivery provides the domain model for last-mile parcel delivery
// coordination. It implements the Delivery aggregate root with lifecycle
// management and the value objects it is built from.
//
// The package includes:
//   - Delivery: the aggregate root owning a delivery record's state machine
//   - Status: forward-only lifecycle states (Scheduled -> Delivered/Cancelled)
//   - Slot: the three delivery time windows (Morning, Afternoon, Evening)
//   - ConfirmationCode: the single-use numeric token issued at booking
//
// Key business rules:
//   - A booking creates exactly one record with exactly one confirmation code
//   - Identifying fields, slot, code and creation time are immutable after booking
//   - Status transitions only move forward; terminal states are final
//   - A proof-of-delivery reference is only recorded on the Delivered transition
//   - A mismatched code presentation leaves the record untouched
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
