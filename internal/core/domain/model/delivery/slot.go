package delivery

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Slot represents one of the three delivery time windows.
// It is a value object validated against the known set of windows;
// the zero value (UnknownSlot) is invalid.
type Slot int

const (
	// UnknownSlot represents an invalid or undefined slot.
	UnknownSlot Slot = iota

	// Morning is the first delivery window of the day.
	Morning

	// Afternoon is the midday delivery window.
	Afternoon

	// Evening is the last delivery window of the day.
	Evening
)

func getSlotStrings() map[Slot]string {
	return map[Slot]string{
		UnknownSlot: "Unknown",
		Morning:     "Morning",
		Afternoon:   "Afternoon",
		Evening:     "Evening",
	}
}

func getValidSlotStrings() map[Slot]string {
	//nolint:exhaustive // UnknownSlot is intentionally excluded as it's invalid
	return map[Slot]string{
		Morning:   "Morning",
		Afternoon: "Afternoon",
		Evening:   "Evening",
	}
}

// SlotFromString parses a slot from its persisted or user-supplied name.
// Returns an error for anything outside {Morning, Afternoon, Evening}.
func SlotFromString(s string) (Slot, error) {
	for slot, name := range getValidSlotStrings() {
		if name == s {
			return slot, nil
		}
	}
	return UnknownSlot, errs.NewValueIsInvalidErrorWithCause(
		"slot", fmt.Errorf("%q is not a valid slot", s))
}

// Validate checks that the slot is one of the three delivery windows.
func (s Slot) Validate() error {
	if _, ok := getValidSlotStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"slot", fmt.Errorf("%d is not a valid slot", s))
	}
	return nil
}

// String returns the human-readable name of the slot.
// Implements fmt.Stringer; safe to call on any Slot value.
func (s Slot) String() string {
	if str, ok := getSlotStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
