package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"usersvc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsKind(t *testing.T) {
	err := errors.Wrap(ErrEmailAlreadyRegistered.WrapMessage("create user"), "service")

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "Email already registered", appErr.Message())
	assert.True(t, errors.Is(err, ErrEmailAlreadyRegistered))
}

func TestBaseError_WithDetails(t *testing.T) {
	err := ErrInvalidData.WithDetails("email: must be a valid email address")

	assert.True(t, errors.Is(err, ErrInvalidData))
	assert.False(t, errors.Is(err, ErrUserNotFound))
	assert.Equal(t, "Invalid data", err.Message())
	assert.Equal(t, "email: must be a valid email address", err.Details())
	assert.Empty(t, ErrInvalidData.Details(), "predefined value must stay untouched")
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewDatabaseExecuteError(cause, "failed to list users")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.NotContains(t, err.Message(), "connection refused")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}
