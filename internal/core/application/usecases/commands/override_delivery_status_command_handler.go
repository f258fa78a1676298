package commands

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
)

// OverrideDeliveryStatusCommandHandler handles administrative status
// overrides. The forward-only transition rules still apply: a record never
// re-enters Scheduled, and a Delivered record stays Delivered.
type OverrideDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewOverrideDeliveryStatusCommandHandler creates a handler for status
// override operations.
func NewOverrideDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) OverrideDeliveryStatusCommandHandler {
	return OverrideDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the override command. The transition is applied through
// the same compare-and-set as verification, so an override racing a
// verification cannot double-apply.
func (h *OverrideDeliveryStatusCommandHandler) Handle(
	ctx context.Context, cmd OverrideDeliveryStatusCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	record, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	expected := record.Status()

	switch cmd.NewStatus() {
	case delivery.Delivered:
		if err = record.MarkDelivered(nil); err != nil {
			return err
		}
	case delivery.Cancelled:
		if err = record.Cancel(); err != nil {
			return err
		}
	default:
		return errs.NewValueIsInvalidError("new status")
	}

	if err = repo.UpdateStatus(ctx, record, expected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
