package commands

import (
	"errors"
	"io"
	"strings"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/guard"
)

var (
	ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
		"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
	)

	// ErrMissingVerificationInput is returned when the delivery id or the
	// presented code is absent. Checked before any store access.
	ErrMissingVerificationInput = errors.New("delivery id and confirmation code are required")
)

// VerifyDeliveryCommand represents a delivery agent's request to close a
// delivery by presenting the recipient's confirmation code, optionally with
// a proof-of-delivery photo.
type VerifyDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    delivery.ID
	presentedCode string
	proof         io.Reader

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a command to verify a delivery.
// The proof reader is optional; a nil proof closes the delivery without an
// artifact. An unset id or blank code fails with
// ErrMissingVerificationInput.
func NewVerifyDeliveryCommand(
	deliveryID delivery.ID, presentedCode string, proof io.Reader,
) (VerifyDeliveryCommand, error) {
	if deliveryID <= 0 || strings.TrimSpace(presentedCode) == "" {
		return VerifyDeliveryCommand{}, ErrMissingVerificationInput
	}

	return VerifyDeliveryCommand{
		deliveryID:    deliveryID,
		presentedCode: presentedCode,
		proof:         proof,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to verify.
func (c VerifyDeliveryCommand) DeliveryID() delivery.ID {
	return c.deliveryID
}

// PresentedCode returns the code presented by the delivery agent.
func (c VerifyDeliveryCommand) PresentedCode() string {
	return c.presentedCode
}

// Proof returns the optional proof-of-delivery artifact.
func (c VerifyDeliveryCommand) Proof() io.Reader {
	return c.proof
}
