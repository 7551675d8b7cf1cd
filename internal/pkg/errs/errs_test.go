package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundError("order", "a1b2"), errs.ErrObjectNotFound},
		{"value is invalid", errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid},
		{"value is out of range", errs.NewValueIsOutOfRangeError("quantity", -1, 1, 100), errs.ErrValueIsOutOfRange},
		{"value is required", errs.NewValueIsRequiredError("order number"), errs.ErrValueIsRequired},
		{"version is invalid", errs.NewVersionIsInvalidError("version", errors.New("stale")), errs.ErrVersionIsInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, tc.name, tc.sentinel.Error())
		})
	}
}

func TestObjectNotFoundError(t *testing.T) {
	t.Run("should carry the parameter and id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "a1b2")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "a1b2", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: a1b2", err.Error())
	})

	t.Run("should include the cause in the message", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewObjectNotFoundErrorWithCause("partner", "c3d4", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: partner, ID is: c3d4 (cause: connection refused)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("should name the offending parameter", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		assert.Equal(t, "value is invalid: status", err.Error())
	})

	t.Run("should include the cause in the message", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", "shipped"))

		assert.Equal(t, `value is invalid: status (cause: "shipped" is not a valid status)`, err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("should carry the value and its bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", -1, 1, 100)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, -1, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, "value is invalid: -1 is quantity, min value is 1, max value is 100", err.Error())
	})

	t.Run("should append the cause", func(t *testing.T) {
		cause := errors.New("checklist line rejected")
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 100, cause)

		assert.Equal(t,
			"value is invalid: 0 is quantity, min value is 1, max value is 100 (cause: checklist line rejected)",
			err.Error())
	})

	t.Run("should flatten newlines out of the message", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "first\nsecond", 0, 10)

		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "first second")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("reason")
	assert.Equal(t, "value is required: reason", err.Error())

	withCause := errs.NewValueIsRequiredErrorWithCause("reason", errors.New("empty string"))
	assert.Equal(t, "value is required: reason (cause: empty string)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("version", errors.New("stale row"))
	assert.Equal(t, "version is invalid: version (cause: stale row)", err.Error())

	bare := errs.NewVersionIsInvalidErrorWithCause("version")
	require.NoError(t, bare.Cause)
	assert.Equal(t, "version is invalid: version", bare.Error())
}
