package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("prepTime", 150, 5, 120)

		assert.Equal(t, "value is invalid: 150 is prepTime, min value is 5, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("foodQuality", 7, 1, 5, cause)

		assert.Equal(t,
			"value is invalid: 7 is foodQuality, min value is 1, max value is 5 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("customerName")

	assert.Equal(t, "value is required: customerName", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("customerName", errors.New("blank"))
	assert.Equal(t, "value is required: customerName (cause: blank)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("order", "42", 3)

	assert.Equal(t, "version is invalid: order 42 was modified concurrently (read at version 3)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestLifecycleErrors(t *testing.T) {
	t.Run("invalid transition carries current status", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("PREP", "PICKED")

		assert.Equal(t, "invalid status transition: cannot move order from PREP to PICKED", err.Error())
		status, ok := errs.CurrentStatus(err)
		assert.True(t, ok)
		assert.Equal(t, "PREP", status)
	})

	t.Run("terminal state matches invalid transition", func(t *testing.T) {
		err := errs.NewTerminalStateError("DELIVERED", "update")

		require.ErrorIs(t, err, errs.ErrTerminalState)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, errs.KindTerminalState, errs.KindOf(err))
	})

	t.Run("partner busy without active order id", func(t *testing.T) {
		err := errs.NewPartnerBusyErrorWithCause("p-1", errors.New("unique violation"))

		assert.Equal(t, "partner already has an active delivery: p-1 (cause: unique violation)", err.Error())
	})

	t.Run("partner busy with active order id", func(t *testing.T) {
		err := errs.NewPartnerBusyError("p-1", "o-9")

		assert.Equal(t, "partner already has an active delivery: p-1 is delivering order o-9", err.Error())
	})
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		err  error
		kind errs.Kind
	}{
		{errs.NewObjectNotFoundError("order", "1"), errs.KindNotFound},
		{errs.NewPermissionDeniedError("cancel order", "u-1"), errs.KindPermissionDenied},
		{errs.NewInvalidTransitionError("READY", "CANCELLED"), errs.KindInvalidTransition},
		{errs.NewTerminalStateError("CANCELLED", "update"), errs.KindTerminalState},
		{errs.NewInvalidStateError("PICKED", "assign"), errs.KindInvalidState},
		{errs.NewNotAssignedError("o-1", "p-1"), errs.KindNotAssigned},
		{errs.NewPartnerUnavailableError("p-1", "inactive"), errs.KindPartnerUnavailable},
		{errs.NewPartnerBusyError("p-1", "o-2"), errs.KindPartnerBusy},
		{errs.NewAlreadyRatedError("o-1"), errs.KindAlreadyRated},
		{errs.NewValueIsRequiredError("items"), errs.KindValidation},
		{errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), errs.KindValidation},
		{fmt.Errorf("wrapped: %w", errs.NewAlreadyRatedError("o-1")), errs.KindAlreadyRated},
		{errors.New("boom"), errs.KindInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}
}

func TestCurrentStatus_NoCarrier(t *testing.T) {
	_, ok := errs.CurrentStatus(errs.NewAlreadyRatedError("o-1"))
	assert.False(t, ok)
}
