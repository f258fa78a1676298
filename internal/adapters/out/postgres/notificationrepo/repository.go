package notificationrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/notification"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new outbox entry to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetUndispatched retrieves up to limit entries still owed to recipients
// (pending or failed), oldest first so retries do not starve new bookings.
func (r *GormNotificationRepository) GetUndispatched(
	ctx context.Context, limit int,
) ([]*notification.Notification, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{notification.Pending.String(), notification.Failed.String()}).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// Update saves the dispatch outcome of an existing outbox entry.
func (r *GormNotificationRepository) Update(ctx context.Context, aggregate *notification.Notification) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":     dto.Status,
			"attempts":   dto.Attempts,
			"receipt_id": dto.ReceiptID,
			"sent_at":    dto.SentAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a single entry by its identifier.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
