package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrOverrideDeliveryStatusCommandIsNotConstructed = errors.New(
	"OverrideDeliveryStatusCommand must be created via NewOverrideDeliveryStatusCommand constructor",
)

// OverrideDeliveryStatusCommand represents an administrative request to
// force a delivery into a status without OTP verification. Used by the
// operational day view; authorization is an external boundary.
type OverrideDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID delivery.ID
	newStatus  delivery.Status

	guard guard.ConstructorGuard
}

// NewOverrideDeliveryStatusCommand creates a command to override a delivery
// status.
func NewOverrideDeliveryStatusCommand(
	deliveryID delivery.ID, newStatus delivery.Status,
) (OverrideDeliveryStatusCommand, error) {
	if deliveryID <= 0 {
		return OverrideDeliveryStatusCommand{}, errs.NewValueIsInvalidError("delivery id")
	}
	if err := newStatus.Validate(); err != nil {
		return OverrideDeliveryStatusCommand{}, err
	}

	return OverrideDeliveryStatusCommand{
		deliveryID: deliveryID,
		newStatus:  newStatus,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to override.
func (c OverrideDeliveryStatusCommand) DeliveryID() delivery.ID {
	return c.deliveryID
}

// NewStatus returns the status to force.
func (c OverrideDeliveryStatusCommand) NewStatus() delivery.Status {
	return c.newStatus
}
