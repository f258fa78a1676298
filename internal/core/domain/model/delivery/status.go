package delivery

import (
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"
)

var (
	// ErrAlreadyDelivered is returned when a Delivered record is asked to
	// transition again. Deliveries that lose a verification race surface
	// this error instead of silently re-applying the transition.
	ErrAlreadyDelivered = errors.New("delivery is already delivered")

	// ErrStatusConflict is returned by the store when a compare-and-set
	// status update finds the record in a different state than expected.
	ErrStatusConflict = errors.New("delivery status changed concurrently")
)

// Status represents the lifecycle state of a delivery record.
// Transitions only move forward:
//
//	Scheduled ──> Delivered
//	    │
//	    └───────> Cancelled
//
// Delivered and Cancelled are terminal; no record re-enters Scheduled.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Scheduled is the initial status, entered at booking.
	// The confirmation code is live while a record is Scheduled.
	Scheduled

	// Delivered indicates the delivery was closed by a successful
	// code verification (or an administrative override). Terminal.
	Delivered

	// Cancelled indicates the delivery was withdrawn by an
	// administrative override before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Scheduled:     "Scheduled",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Scheduled: "Scheduled",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses a status from its persisted string form.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Scheduled, Delivered, Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Scheduled -> Delivered
//
// A Delivered record returns ErrAlreadyDelivered; any other state is a
// plain invalid-transition error.
func (s Status) Deliver() (Status, error) {
	if s == Delivered {
		return 0, ErrAlreadyDelivered
	}
	if s != Scheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver from", s.String()),
		)
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Scheduled -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != Scheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel from", s.String()),
		)
	}

	return Cancelled, nil
}
