// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read directly
// from the database and return flat response structures shaped for callers.
package queries

import (
	"errors"
	"time"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrGetDailyDeliveriesQueryIsNotConstructed = errors.New(
	"GetDailyDeliveriesQuery must be created via NewGetDailyDeliveriesQuery constructor",
)

// GetDailyDeliveriesQuery retrieves the deliveries created on one UTC
// calendar day, for the operational day view. Each execution recomputes.
type GetDailyDeliveriesQuery struct {
	day time.Time

	guard guard.ConstructorGuard
}

// NewGetDailyDeliveriesQuery creates a query for the given day. Any instant
// within the day selects the whole day; the handler buckets by UTC date.
func NewGetDailyDeliveriesQuery(day time.Time) (GetDailyDeliveriesQuery, error) {
	if day.IsZero() {
		return GetDailyDeliveriesQuery{}, errs.NewValueIsRequiredError("day")
	}

	return GetDailyDeliveriesQuery{
		day:   day,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDailyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDailyDeliveriesQueryIsNotConstructed)
}

// Day returns the instant selecting the UTC calendar day to list.
func (q GetDailyDeliveriesQuery) Day() time.Time {
	return q.day
}

// GetDailyDeliveriesQueryResponse represents one delivery row in the day
// view. Recommendation and proof fields are nil when absent.
type GetDailyDeliveriesQueryResponse struct {
	ID            int64
	Sender        string
	Recipient     string
	Phone         string
	Address       string
	Slot          string
	PredictedSlot *string
	Confidence    *float64
	Status        string
	ProofPath     *string
	CreatedAt     time.Time
}
