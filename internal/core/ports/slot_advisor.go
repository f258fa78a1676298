package ports

import (
	"lastmile/internal/core/domain/model/delivery"
)

// SlotAdvisor recommends a delivery window from historical-style features.
// The origin of the recommendation is opaque to the lifecycle engine; the
// engine only relies on the contract below.
//
// Implementations must be deterministic for a fixed trained model and fixed
// input, return exactly one of the three slot values, and a confidence that
// is the classifier's top-class probability in [0,1]. Calls are
// side-effect-free with respect to shared state and may run fully in
// parallel across bookings.
type SlotAdvisor interface {
	// Recommend maps (area 1..4, weekday 0..6, pastSuccessRate 0..100) to
	// a slot and confidence. Out-of-range inputs fail with an
	// errs.ValueIsOutOfRangeError; an advisor without a usable model fails
	// with advisor.ErrModelUnavailable. The booking flow absorbs either
	// and proceeds with the sender's chosen slot.
	Recommend(area, weekday, pastSuccessRate int) (delivery.Slot, float64, error)
}
