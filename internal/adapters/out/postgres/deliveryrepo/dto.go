// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, converting between domain entities and database rows.
package deliveryrepo

import (
	"time"

	"lastmile/internal/core/domain/model/delivery"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The primary key is a bigserial so identifiers are assigned by
// the store and increase monotonically with insertion order.
type DeliveryDTO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Sender        string `gorm:"not null"`
	Recipient     string `gorm:"not null"`
	Phone         string `gorm:"not null"`
	Address       string `gorm:"not null"`
	Slot          string `gorm:"not null"`
	PredictedSlot *string
	Confidence    *float64
	Code          string `gorm:"not null"`
	ProofPath     *string
	Status        string `gorm:"not null;index"`
	CreatedAt     int64  `gorm:"not null;index"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate to its database representation.
// Timestamps are stored as Unix seconds in UTC so day-range queries do not
// depend on the session time zone.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var predictedSlot *string
	var confidence *float64
	if rec := aggregate.Recommendation(); rec != nil {
		s := rec.Slot.String()
		c := rec.Confidence
		predictedSlot = &s
		confidence = &c
	}

	return DeliveryDTO{
		ID:            int64(aggregate.ID()),
		Sender:        aggregate.Sender(),
		Recipient:     aggregate.Recipient(),
		Phone:         aggregate.Phone(),
		Address:       aggregate.Address(),
		Slot:          aggregate.Slot().String(),
		PredictedSlot: predictedSlot,
		Confidence:    confidence,
		Code:          aggregate.Code().String(),
		ProofPath:     aggregate.ProofPath(),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt().Unix(),
	}
}

// toDomain converts a database DTO to a delivery aggregate using
// RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	slot, err := delivery.SlotFromString(dto.Slot)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	code, err := delivery.NewConfirmationCode(dto.Code)
	if err != nil {
		return nil, err
	}

	var rec *delivery.Recommendation
	if dto.PredictedSlot != nil && dto.Confidence != nil {
		predicted, predictedErr := delivery.SlotFromString(*dto.PredictedSlot)
		if predictedErr != nil {
			return nil, predictedErr
		}
		rec = &delivery.Recommendation{Slot: predicted, Confidence: *dto.Confidence}
	}

	return delivery.RestoreDelivery(
		delivery.ID(dto.ID),
		dto.Sender,
		dto.Recipient,
		dto.Phone,
		dto.Address,
		slot,
		code,
		rec,
		dto.ProofPath,
		status,
		time.Unix(dto.CreatedAt, 0).UTC(),
	)
}
