package delivery

import (
	"errors"
	"time"

	"lastmile/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New(
	"Delivery must be created via NewDelivery or RestoreDelivery constructor")

// ErrIDAlreadyAssigned is returned when AssignID is called on a delivery
// that already carries a store-assigned identifier.
var ErrIDAlreadyAssigned = errors.New("delivery id is already assigned")

// ID is the store-assigned, monotonically increasing delivery identifier.
// A delivery has no ID until the store persists it; zero means unassigned.
type ID int64

// Recommendation carries the slot advisor's output captured at booking time.
// It is kept for analytics and is not authoritative for delivery.
type Recommendation struct {
	Slot       Slot
	Confidence float64
}

// Delivery is the aggregate root owning a delivery record's lifecycle.
//
// Invariants:
//   - identifying fields, slot, code and createdAt are immutable after booking
//   - exactly one confirmation code per record, generated at booking
//   - status only moves forward (Scheduled -> Delivered or Cancelled)
//   - proofPath may only be set on the transition to Delivered
//   - a failed code match never mutates the record
type Delivery struct {
	id            ID
	sender        string
	recipient     string
	phone         string
	address       string
	slot          Slot
	predictedSlot *Slot
	confidence    *float64
	code          ConfirmationCode
	proofPath     *string
	status        Status
	createdAt     time.Time
	isConstructed bool
}

// NewDelivery creates a booking in Scheduled status.
//
// The recommendation is optional: when the advisor is unavailable the
// booking proceeds with the sender's chosen slot and rec stays nil.
// createdAt is normalized to UTC at second precision for day-bucketed
// queries. The store-assigned ID is attached later via AssignID.
func NewDelivery(
	sender, recipient, phone, address string,
	slot Slot,
	code ConfirmationCode,
	rec *Recommendation,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        Scheduled,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setSender(sender),
		d.setRecipient(recipient),
		d.setPhone(phone),
		d.setAddress(address),
		d.setSlot(slot),
		d.setCode(code),
		d.setRecommendation(rec),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rehydrates a persisted record without re-running booking
// rules. Used by the repository layer only; the stored state is trusted to
// have satisfied the invariants when written.
func RestoreDelivery(
	id ID,
	sender, recipient, phone, address string,
	slot Slot,
	code ConfirmationCode,
	rec *Recommendation,
	proofPath *string,
	status Status,
	createdAt time.Time,
) (*Delivery, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("delivery id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d, err := NewDelivery(sender, recipient, phone, address, slot, code, rec, createdAt)
	if err != nil {
		return nil, err
	}

	d.id = id
	d.status = status
	d.proofPath = proofPath
	return d, nil
}

// Validate ensures the Delivery was constructed through NewDelivery or
// RestoreDelivery, preventing use of zero-value aggregates.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their store-assigned identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id != 0 && d.id == other.id
}

// ID returns the store-assigned identifier, or zero before persistence.
func (d *Delivery) ID() ID { return d.id }

// Sender returns the sender's name.
func (d *Delivery) Sender() string { return d.sender }

// Recipient returns the recipient's name.
func (d *Delivery) Recipient() string { return d.recipient }

// Phone returns the recipient's phone number.
func (d *Delivery) Phone() string { return d.phone }

// Address returns the delivery address.
func (d *Delivery) Address() string { return d.address }

// Slot returns the delivery window chosen at booking.
func (d *Delivery) Slot() Slot { return d.slot }

// Recommendation returns the advisor's output captured at booking,
// or nil when the advisor was unavailable.
func (d *Delivery) Recommendation() *Recommendation {
	if d.predictedSlot == nil || d.confidence == nil {
		return nil
	}
	return &Recommendation{Slot: *d.predictedSlot, Confidence: *d.confidence}
}

// Code returns the single-use confirmation code.
func (d *Delivery) Code() ConfirmationCode { return d.code }

// ProofPath returns the recorded proof-of-delivery artifact reference,
// or nil if none has been set.
func (d *Delivery) ProofPath() *string { return d.proofPath }

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status { return d.status }

// CreatedAt returns the booking timestamp (UTC, second precision).
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// AssignID attaches the store-assigned identifier after insertion.
// The identifier is immutable once set.
func (d *Delivery) AssignID(id ID) error {
	if d.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("delivery id")
	}
	d.id = id
	return nil
}

// MarkDelivered closes the delivery after a successful code verification
// (or an administrative override). proofPath is optional; when supplied it
// is recorded together with the status transition so the record is never
// observed with a proof but still Scheduled.
//
// Returns ErrAlreadyDelivered when the record is already Delivered.
func (d *Delivery) MarkDelivered(proofPath *string) error {
	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.proofPath = proofPath
	return nil
}

// Cancel withdraws a Scheduled delivery. Terminal.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

func (d *Delivery) setSender(sender string) error {
	if sender == "" {
		return errs.NewValueIsRequiredError("sender")
	}
	d.sender = sender
	return nil
}

func (d *Delivery) setRecipient(recipient string) error {
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	d.recipient = recipient
	return nil
}

func (d *Delivery) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	d.phone = phone
	return nil
}

func (d *Delivery) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}

func (d *Delivery) setSlot(slot Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	d.slot = slot
	return nil
}

func (d *Delivery) setCode(code ConfirmationCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	d.code = code
	return nil
}

func (d *Delivery) setRecommendation(rec *Recommendation) error {
	if rec == nil {
		return nil
	}
	if err := rec.Slot.Validate(); err != nil {
		return err
	}
	if rec.Confidence < 0 || rec.Confidence > 1 {
		return errs.NewValueIsOutOfRangeError("confidence", rec.Confidence, 0, 1)
	}

	predicted := rec.Slot
	confidence := rec.Confidence
	d.predictedSlot = &predicted
	d.confidence = &confidence
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt.UTC().Truncate(time.Second)
	return nil
}
