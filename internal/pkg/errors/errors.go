package errors

import (
	"errors"
	"net/http"
)

// Application errors. Services wrap these with detail; handlers map them to HTTP status.
var (
	ErrConfiguration       = errors.New("missing configuration")
	ErrClientInput         = errors.New("invalid request")
	ErrInvalidState        = errors.New("invalid or expired state")
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamProvider    = errors.New("upstream provider error")
	ErrResolution          = errors.New("could not create or find user")
	ErrIdentityExists      = errors.New("identity already exists")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoLinkedLineAccount = errors.New("user does not have a linked LINE account")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

// HTTPStatus maps an application error to the status code returned to clients.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, ErrClientInput), errors.Is(err, ErrInvalidState), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNoLinkedLineAccount):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
