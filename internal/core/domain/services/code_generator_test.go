package services_test

import (
	"testing"

	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCryptoCodeGenerator(t *testing.T) {
	t.Run("accepts valid widths", func(t *testing.T) {
		for _, w := range []int{4, 6, 8} {
			_, err := services.NewCryptoCodeGenerator(w)
			require.NoError(t, err)
		}
	})

	t.Run("rejects out-of-range widths", func(t *testing.T) {
		for _, w := range []int{0, 3, 9} {
			_, err := services.NewCryptoCodeGenerator(w)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})
}

func TestCryptoCodeGeneratorGenerate(t *testing.T) {
	t.Run("codes are fixed-width numeric strings", func(t *testing.T) {
		gen, err := services.NewCryptoCodeGenerator(4)
		require.NoError(t, err)

		for range 200 {
			code, genErr := gen.Generate()
			require.NoError(t, genErr)

			value := code.String()
			assert.Len(t, value, 4)
			for _, r := range value {
				assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", value)
			}
		}
	})

	t.Run("consecutive codes are not constant", func(t *testing.T) {
		gen, err := services.NewCryptoCodeGenerator(6)
		require.NoError(t, err)

		seen := make(map[string]struct{})
		for range 50 {
			code, genErr := gen.Generate()
			require.NoError(t, genErr)
			seen[code.String()] = struct{}{}
		}

		// 50 draws from a million-value space collide vanishingly rarely.
		assert.Greater(t, len(seen), 1)
	})
}
