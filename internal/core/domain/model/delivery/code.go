package delivery

import (
	"errors"
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
)

// ErrInvalidCode is returned when a presented confirmation code does not
// match the stored one. A failed match never mutates the record.
var ErrInvalidCode = errors.New("confirmation code does not match")

// Code width bounds. Four digits matches the reference behavior; wider
// codes shrink an enumeration adversary's odds, so up to eight is allowed.
const (
	MinCodeLength = 4
	MaxCodeLength = 8
)

// ConfirmationCode is the single-use token a recipient relays to the
// delivery agent to authorize closing the delivery. It is a fixed-width
// numeric string with leading zeros preserved, generated exactly once at
// booking time and never regenerated.
type ConfirmationCode struct {
	value string
}

// NewConfirmationCode validates and wraps a generated code value.
// The value must be all digits and between MinCodeLength and MaxCodeLength
// characters.
func NewConfirmationCode(value string) (ConfirmationCode, error) {
	if value == "" {
		return ConfirmationCode{}, errs.NewValueIsRequiredError("confirmation code")
	}
	if len(value) < MinCodeLength || len(value) > MaxCodeLength {
		return ConfirmationCode{}, errs.NewValueIsOutOfRangeError(
			"confirmation code length", len(value), MinCodeLength, MaxCodeLength)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return ConfirmationCode{}, errs.NewValueIsInvalidErrorWithCause(
				"confirmation code", fmt.Errorf("%q is not numeric", value))
		}
	}

	return ConfirmationCode{value: value}, nil
}

// Matches compares a presented code against the stored one.
// Both sides are trimmed of surrounding whitespace; the comparison itself
// is exact, so leading zeros matter.
func (c ConfirmationCode) Matches(presented string) bool {
	return c.value != "" && strings.TrimSpace(c.value) == strings.TrimSpace(presented)
}

// String returns the code value, leading zeros included.
func (c ConfirmationCode) String() string {
	return c.value
}

// Validate returns an error for the zero value.
func (c ConfirmationCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("confirmation code")
	}
	return nil
}
