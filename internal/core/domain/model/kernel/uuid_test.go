package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should generate valid unique identifiers", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
		assert.NotEqual(t, first.String(), second.String())
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse the canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, canonical, id.String())
	})

	t.Run("should accept braced and urn forms", func(t *testing.T) {
		for _, input := range []string{
			"{" + canonical + "}",
			"urn:uuid:" + canonical,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round-trip through the byte form", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject wrong lengths", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x01, 0x02})
		require.Error(t, err)

		_, err = kernel.UUIDFromBytes(nil)
		require.Error(t, err)
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		zero := uuid.Nil

		_, err := kernel.UUIDFromBytes(zero[:])

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should reject the zero value", func(t *testing.T) {
		var id kernel.UUID

		err := id.Validate()

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("should compare by value", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)
		require.NoError(t, err)

		same, err := kernel.UUIDFromString(canonical)
		require.NoError(t, err)

		assert.True(t, id.IsEqual(same))
		assert.False(t, id.IsEqual(kernel.NewUUID()))
	})

	t.Run("should treat two zero values as equal", func(t *testing.T) {
		var a, b kernel.UUID

		assert.True(t, a.IsEqual(b))
	})
}
