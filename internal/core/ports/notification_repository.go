package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for the
// notification outbox.
type NotificationRepository interface {
	// Add persists a new outbox entry. Booked deliveries and their
	// notifications commit in the same transaction.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a single entry by its identifier.
	// Returns errs.ObjectNotFoundError when no entry exists.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetUndispatched retrieves up to limit entries awaiting dispatch
	// (pending or failed), oldest first.
	GetUndispatched(ctx context.Context, limit int) ([]*notification.Notification, error)

	// Update persists the dispatch outcome of an entry.
	Update(ctx context.Context, aggregate *notification.Notification) error
}
