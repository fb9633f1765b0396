package apperror

import (
	"net/http"

	"portfolio-backend/internal/domain"
)

// MsgInternal is the only message a client sees for an unexpected failure
const MsgInternal = "An unexpected error occurred. Please try again later."

type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation builds a 400 whose message is the headline rule and whose fields hold every failure
func Validation(message string, errs domain.ValidationErrors) *AppError {
	e := New(http.StatusBadRequest, message, errs)
	e.Fields = errs.Messages()
	return e
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, MsgInternal, err)
}
