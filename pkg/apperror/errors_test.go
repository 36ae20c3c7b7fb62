package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCauseKeepsSentinelIdentity(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrStorageUnavailable.WithCause(cause)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrStorageUnavailable.Message, err.Error())

	// The sentinel itself stays untouched.
	assert.Nil(t, ErrStorageUnavailable.Unwrap())
}

func TestNewCommitFailedErrorHidesCause(t *testing.T) {
	cause := fmt.Errorf("UNIQUE constraint failed: receipts.receipt_no")
	err := NewCommitFailedError(cause)

	assert.Equal(t, 500, err.Code)
	assert.Equal(t, "Failed to commit sale", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestGetAppErrorWrapsUnknownErrors(t *testing.T) {
	appErr := GetAppError(errors.New("something broke"))
	require.NotNil(t, appErr)
	assert.Equal(t, 500, appErr.Code)

	wrapped := fmt.Errorf("handler: %w", ErrReceiptNotFound)
	assert.Equal(t, 404, GetAppError(wrapped).Code)
	assert.True(t, IsAppError(wrapped))
}
