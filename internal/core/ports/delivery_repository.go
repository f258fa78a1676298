// Package ports defines the contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
)

// DeliveryRepository defines the persistence contract for delivery records.
//
// Implementations must provide the concurrency guarantees the lifecycle
// engine relies on: Add assigns identifiers atomically (concurrent inserts
// never collide), and UpdateStatus is a compare-and-set so two concurrent
// verifications of the same record cannot both win.
type DeliveryRepository interface {
	// Add persists a new delivery record and backfills the store-assigned
	// identifier into the aggregate. Identifiers are unique and increase
	// monotonically with insertion order.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery record by its identifier.
	// Returns errs.ObjectNotFoundError when no record exists.
	Get(ctx context.Context, id delivery.ID) (*delivery.Delivery, error)

	// UpdateStatus persists the aggregate's status and proof path as one
	// atomic compare-and-set keyed on the expected prior status.
	//
	// Returns errs.ObjectNotFoundError when the record does not exist, and
	// delivery.ErrStatusConflict when the record exists but its stored
	// status differs from expected (a concurrent transition won). Only the
	// status and proof path columns are written; everything else is
	// immutable after booking.
	UpdateStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// ListByDay retrieves the records whose creation time falls on the
	// given UTC calendar day, in insertion order. Each call recomputes.
	ListByDay(ctx context.Context, day time.Time) ([]*delivery.Delivery, error)
}
