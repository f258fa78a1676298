package queries_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDailyDeliveriesQuery_ValidInput(t *testing.T) {
	day := time.Date(2026, 7, 9, 13, 45, 0, 0, time.UTC)
	query, err := queries.NewGetDailyDeliveriesQuery(day)
	require.NoError(t, err)
	assert.Equal(t, day, query.Day())
	assert.NoError(t, query.Validate())
}

func TestNewGetDailyDeliveriesQuery_ZeroDay(t *testing.T) {
	_, err := queries.NewGetDailyDeliveriesQuery(time.Time{})
	require.Error(t, err)
}

func TestGetDailyDeliveriesQuery_ZeroValueFailsValidation(t *testing.T) {
	query := queries.GetDailyDeliveriesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDailyDeliveriesQueryIsNotConstructed)
}
