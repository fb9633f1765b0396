package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("smtp: 535 auth failed")
	err := fmt.Errorf("send: %w", apperror.New(http.StatusInternalServerError, "Failed", cause))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Failed", appErr.Error())
}

func TestValidationError(t *testing.T) {
	errs := domain.ValidationErrors{
		domain.FieldEmail: {Kind: domain.ErrInvalidFormat, Message: "Please enter a valid email address"},
	}
	appErr := apperror.Validation("Please enter a valid email address", errs)

	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, map[string]string{"email": "Please enter a valid email address"}, appErr.Fields)

	var got domain.ValidationErrors
	require.True(t, errors.As(appErr, &got))
	assert.Len(t, got, 1)
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	appErr := apperror.Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, apperror.MsgInternal, appErr.Error())
	assert.ErrorIs(t, appErr, cause)
}

func TestRateLimitErrors(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, apperror.TooManyRequests("slow down").Code)

	cause := errors.New("redis: connection refused")
	unavailable := apperror.Unavailable("try again", cause)
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.Code)
	assert.ErrorIs(t, unavailable, cause)
}
