package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/guard"
)

var (
	ErrBookDeliveryCommandIsNotConstructed = errors.New(
		"BookDeliveryCommand must be created via NewBookDeliveryCommand constructor",
	)
	ErrSenderIsRequired    = errors.New("sender is required")
	ErrRecipientIsRequired = errors.New("recipient is required")
	ErrPhoneIsRequired     = errors.New("phone is required")
	ErrAddressIsRequired   = errors.New("address is required")
)

// BookDeliveryCommand represents a request to book a new delivery.
// Carries the identifying fields, the sender's chosen slot, and the advisor
// features used to capture a slot recommendation at booking time.
//
// The advisor features are passed through as-is: out-of-range values make
// the recommendation unavailable, they never fail the booking.
type BookDeliveryCommand struct { //nolint:recvcheck //using for validation
	sender          string
	recipient       string
	phone           string
	address         string
	slot            delivery.Slot
	area            int
	weekday         int
	pastSuccessRate int

	guard guard.ConstructorGuard
}

// NewBookDeliveryCommand creates a command to book a delivery.
// Validates that the identifying fields are present and the chosen slot is
// one of the three delivery windows.
func NewBookDeliveryCommand(
	sender, recipient, phone, address string,
	slot delivery.Slot,
	area, weekday, pastSuccessRate int,
) (BookDeliveryCommand, error) {
	cmd := BookDeliveryCommand{
		area:            area,
		weekday:         weekday,
		pastSuccessRate: pastSuccessRate,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSender(sender),
		cmd.setRecipient(recipient),
		cmd.setPhone(phone),
		cmd.setAddress(address),
		cmd.setSlot(slot),
	); err != nil {
		return BookDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BookDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrBookDeliveryCommandIsNotConstructed)
}

// Sender returns the sender's name.
func (c BookDeliveryCommand) Sender() string {
	return c.sender
}

// Recipient returns the recipient's name.
func (c BookDeliveryCommand) Recipient() string {
	return c.recipient
}

// Phone returns the recipient's phone number.
func (c BookDeliveryCommand) Phone() string {
	return c.phone
}

// Address returns the delivery address.
func (c BookDeliveryCommand) Address() string {
	return c.address
}

// Slot returns the sender's chosen delivery window.
func (c BookDeliveryCommand) Slot() delivery.Slot {
	return c.slot
}

// Area returns the delivery area feature for the slot advisor.
func (c BookDeliveryCommand) Area() int {
	return c.area
}

// Weekday returns the weekday feature for the slot advisor.
func (c BookDeliveryCommand) Weekday() int {
	return c.weekday
}

// PastSuccessRate returns the historical success-rate feature for the slot
// advisor.
func (c BookDeliveryCommand) PastSuccessRate() int {
	return c.pastSuccessRate
}

func (c *BookDeliveryCommand) setSender(sender string) error {
	if sender == "" {
		return ErrSenderIsRequired
	}

	c.sender = sender
	return nil
}

func (c *BookDeliveryCommand) setRecipient(recipient string) error {
	if recipient == "" {
		return ErrRecipientIsRequired
	}

	c.recipient = recipient
	return nil
}

func (c *BookDeliveryCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *BookDeliveryCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *BookDeliveryCommand) setSlot(slot delivery.Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	c.slot = slot
	return nil
}
