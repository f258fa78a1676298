package delivery_test

import (
	"testing"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmationCode(t *testing.T) {
	t.Run("accepts fixed-width numeric values", func(t *testing.T) {
		for _, v := range []string{"0000", "0427", "9999", "123456", "12345678"} {
			code, err := delivery.NewConfirmationCode(v)
			require.NoError(t, err)
			assert.Equal(t, v, code.String())
		}
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, err := delivery.NewConfirmationCode("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects wrong width", func(t *testing.T) {
		_, err := delivery.NewConfirmationCode("123")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = delivery.NewConfirmationCode("123456789")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects non-numeric values", func(t *testing.T) {
		for _, v := range []string{"12a4", "12 4", "-123", "١٢٣٤"} {
			_, err := delivery.NewConfirmationCode(v)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "value %q", v)
		}
	})
}

func TestConfirmationCodeMatches(t *testing.T) {
	code, err := delivery.NewConfirmationCode("0427")
	require.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		assert.True(t, code.Matches("0427"))
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		assert.True(t, code.Matches(" 0427 "))
		assert.True(t, code.Matches("\t0427\n"))
	})

	t.Run("leading zeros matter", func(t *testing.T) {
		assert.False(t, code.Matches("427"))
	})

	t.Run("mismatch", func(t *testing.T) {
		assert.False(t, code.Matches("0428"))
		assert.False(t, code.Matches(""))
	})

	t.Run("zero value never matches", func(t *testing.T) {
		var zero delivery.ConfirmationCode
		assert.False(t, zero.Matches(""))
		assert.False(t, zero.Matches("0427"))
	})
}
