// Package notificationrepo provides data transfer objects and mapping
// functions for notification outbox persistence.
package notificationrepo

import (
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting outbox
// entries. The status index serves the dispatch job's undispatched scan.
type NotificationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID int64     `gorm:"not null;index"`
	Phone      string    `gorm:"not null"`
	Body       string    `gorm:"not null"`
	Status     string    `gorm:"not null;index"`
	Attempts   int       `gorm:"not null"`
	ReceiptID  *string
	CreatedAt  int64 `gorm:"not null;index"`
	SentAt     *int64
}

// TableName specifies the database table name for notification entities.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification aggregate to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var sentAt *int64
	if at := aggregate.SentAt(); at != nil {
		unix := at.Unix()
		sentAt = &unix
	}

	return NotificationDTO{
		ID:         aggregate.ID().Bytes(),
		DeliveryID: int64(aggregate.DeliveryID()),
		Phone:      aggregate.Phone(),
		Body:       aggregate.Body(),
		Status:     aggregate.Status().String(),
		Attempts:   aggregate.Attempts(),
		ReceiptID:  aggregate.ReceiptID(),
		CreatedAt:  aggregate.CreatedAt().Unix(),
		SentAt:     sentAt,
	}
}

// toDomain converts a database DTO to a notification aggregate using
// RestoreNotification.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := notification.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var sentAt *time.Time
	if dto.SentAt != nil {
		at := time.Unix(*dto.SentAt, 0).UTC()
		sentAt = &at
	}

	return notification.RestoreNotification(
		id,
		delivery.ID(dto.DeliveryID),
		dto.Phone,
		dto.Body,
		status,
		dto.Attempts,
		dto.ReceiptID,
		time.Unix(dto.CreatedAt, 0).UTC(),
		sentAt,
	)
}
