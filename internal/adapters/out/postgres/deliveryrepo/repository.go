package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id any, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery and backfills the store-assigned identifier
// into the aggregate. The bigserial key guarantees uniqueness and
// monotonic assignment under concurrent inserts.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(delivery.ID(dto.ID)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id delivery.ID) (*delivery.Delivery, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("delivery id")
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", int64(id))
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus persists the aggregate's status and proof path as a
// compare-and-set keyed on the expected prior status. When the row exists
// but its stored status differs, a concurrent transition won and
// delivery.ErrStatusConflict is returned.
func (r *GormDeliveryRepository) UpdateStatus(
	ctx context.Context,
	aggregate *delivery.Delivery,
	expected delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", int64(aggregate.ID()), expected.String()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"proof_path": aggregate.ProofPath(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&DeliveryDTO{}).
			Where("id = ?", int64(aggregate.ID())).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("delivery", int64(aggregate.ID()))
		}
		return delivery.ErrStatusConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ListByDay retrieves the deliveries created on the given UTC calendar day,
// in insertion order.
func (r *GormDeliveryRepository) ListByDay(ctx context.Context, day time.Time) ([]*delivery.Delivery, error) {
	start := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start.Unix(), end.Unix()).
		Order("id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
