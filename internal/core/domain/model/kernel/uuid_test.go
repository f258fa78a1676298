package kernel_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a new UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NotEmpty(t, id.String())
		assert.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.NotEqual(t, id1.String(), id2.String())
		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should create UUID from valid string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(validUUID)

		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should accept UUID with braces", func(t *testing.T) {
		id, err := kernel.UUIDFromString("{550e8400-e29b-41d4-a716-446655440000}")

		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
	})

	t.Run("should reject invalid string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject empty string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("")

		require.Error(t, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create UUID from valid bytes", func(t *testing.T) {
		source := uuid.New()
		id, err := kernel.UUIDFromBytes(source[:])

		require.NoError(t, err)
		assert.Equal(t, source.String(), id.String())
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x01, 0x02})

		require.Error(t, err)
	})

	t.Run("should reject nil UUID bytes", func(t *testing.T) {
		nilBytes := make([]byte, 16)
		_, err := kernel.UUIDFromBytes(nilBytes)

		require.Error(t, err)
	})
}

func TestUUIDValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var id kernel.UUID

		require.Error(t, id.Validate())
		assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("constructed value is valid", func(t *testing.T) {
		require.NoError(t, kernel.NewUUID().Validate())
	})
}

func TestUUIDIsEqual(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := id1
	id3 := kernel.NewUUID()

	assert.True(t, id1.IsEqual(id2))
	assert.False(t, id1.IsEqual(id3))
}
