package delivery_test

import (
	"testing"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		for _, s := range []delivery.Status{delivery.Scheduled, delivery.Delivered, delivery.Cancelled} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		require.Error(t, delivery.UnknownStatus.Validate())
		require.Error(t, delivery.Status(42).Validate())
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Scheduled", delivery.Scheduled.String())
	assert.Equal(t, "Delivered", delivery.Delivered.String())
	assert.Equal(t, "Cancelled", delivery.Cancelled.String())
	assert.Equal(t, "Unknown", delivery.UnknownStatus.String())
	assert.Equal(t, "Unknown", delivery.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips valid statuses", func(t *testing.T) {
		for _, s := range []delivery.Status{delivery.Scheduled, delivery.Delivered, delivery.Cancelled} {
			parsed, err := delivery.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := delivery.StatusFromString("InTransit")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = delivery.StatusFromString("")
		require.Error(t, err)
	})
}

func TestStatusDeliver(t *testing.T) {
	t.Run("scheduled can be delivered", func(t *testing.T) {
		next, err := delivery.Scheduled.Deliver()

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, next)
	})

	t.Run("delivered cannot be delivered again", func(t *testing.T) {
		_, err := delivery.Delivered.Deliver()

		require.ErrorIs(t, err, delivery.ErrAlreadyDelivered)
	})

	t.Run("cancelled cannot be delivered", func(t *testing.T) {
		_, err := delivery.Cancelled.Deliver()

		require.Error(t, err)
		assert.NotErrorIs(t, err, delivery.ErrAlreadyDelivered)
	})

	t.Run("unknown cannot be delivered", func(t *testing.T) {
		_, err := delivery.UnknownStatus.Deliver()

		require.Error(t, err)
	})
}

func TestStatusCancel(t *testing.T) {
	t.Run("scheduled can be cancelled", func(t *testing.T) {
		next, err := delivery.Scheduled.Cancel()

		require.NoError(t, err)
		assert.Equal(t, delivery.Cancelled, next)
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		_, err := delivery.Delivered.Cancel()
		require.Error(t, err)

		_, err = delivery.Cancelled.Cancel()
		require.Error(t, err)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, delivery.Scheduled.IsTerminal())
	assert.True(t, delivery.Delivered.IsTerminal())
	assert.True(t, delivery.Cancelled.IsTerminal())
}
