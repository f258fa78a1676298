package notification

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification instance
// was not created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification constructor")

// Status represents the dispatch state of an outbox notification.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Pending means the notification is committed but not yet dispatched.
	Pending

	// Sent means the SMS channel accepted the message and returned a receipt.
	Sent

	// Failed means the last dispatch attempt errored. Failed notifications
	// stay in the outbox and are retried by the dispatch job.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Sent:          "Sent",
		Failed:        "Failed",
	}
}

// StatusFromString parses a status from its persisted string form.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"notification status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of Pending, Sent, Failed.
func (s Status) Validate() error {
	if s != Pending && s != Sent && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause(
			"notification status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Notification is an outbox record of a confirmation-code message owed to a
// recipient. Booking commits it in the same transaction as the delivery
// record, so losing the notification can never lose the delivery; a
// background job dispatches pending rows through the SMS channel.
type Notification struct {
	id            kernel.UUID
	deliveryID    delivery.ID
	phone         string
	body          string
	status        Status
	attempts      int
	receiptID     *string
	createdAt     time.Time
	sentAt        *time.Time
	isConstructed bool
}

// NewNotification creates a pending outbox entry for a booked delivery.
func NewNotification(
	id kernel.UUID,
	deliveryID delivery.ID,
	phone, body string,
	createdAt time.Time,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if deliveryID <= 0 {
		return nil, errs.NewValueIsInvalidError("delivery id")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("body")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		id:            id,
		deliveryID:    deliveryID,
		phone:         phone,
		body:          body,
		status:        Pending,
		createdAt:     createdAt.UTC().Truncate(time.Second),
		isConstructed: true,
	}, nil
}

// RestoreNotification rehydrates a persisted outbox entry.
func RestoreNotification(
	id kernel.UUID,
	deliveryID delivery.ID,
	phone, body string,
	status Status,
	attempts int,
	receiptID *string,
	createdAt time.Time,
	sentAt *time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, deliveryID, phone, body, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsInvalidError("attempts")
	}

	n.status = status
	n.attempts = attempts
	n.receiptID = receiptID
	n.sentAt = sentAt
	return n, nil
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// DeliveryID returns the delivery this notification belongs to.
func (n *Notification) DeliveryID() delivery.ID { return n.deliveryID }

// Phone returns the recipient phone number.
func (n *Notification) Phone() string { return n.phone }

// Body returns the message text, confirmation code included.
func (n *Notification) Body() string { return n.body }

// Status returns the dispatch state.
func (n *Notification) Status() Status { return n.status }

// Attempts returns how many dispatch attempts have been made.
func (n *Notification) Attempts() int { return n.attempts }

// ReceiptID returns the channel's delivery receipt, or nil before Sent.
func (n *Notification) ReceiptID() *string { return n.receiptID }

// CreatedAt returns when the notification was committed to the outbox.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// SentAt returns when the notification was accepted by the channel, or nil.
func (n *Notification) SentAt() *time.Time { return n.sentAt }

// MarkSent records a successful dispatch attempt and the channel receipt.
func (n *Notification) MarkSent(receiptID string, at time.Time) error {
	if n.status == Sent {
		return errs.NewValueIsInvalidError("notification is already sent")
	}
	if receiptID == "" {
		return errs.NewValueIsRequiredError("receipt id")
	}

	sentAt := at.UTC().Truncate(time.Second)
	n.status = Sent
	n.attempts++
	n.receiptID = &receiptID
	n.sentAt = &sentAt
	return nil
}

// MarkFailed records a failed dispatch attempt. The notification stays in
// the outbox for a later retry.
func (n *Notification) MarkFailed() error {
	if n.status == Sent {
		return errs.NewValueIsInvalidError("notification is already sent")
	}

	n.status = Failed
	n.attempts++
	return nil
}
