// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within
	// a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// NotificationRepoFactory provides access to the notification outbox
	// repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// NotificationUoW manages transactions for outbox-only operations.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// BookingUoW manages transactions spanning the delivery record and its
	// outbox notification. Booking commits both or neither.
	BookingUoW interface {
		TxManager
		DeliveryRepoFactory
		NotificationRepoFactory
	}

	// BookingUoWFactory creates new booking unit of work instances.
	BookingUoWFactory interface {
		Create() BookingUoW
	}
)
