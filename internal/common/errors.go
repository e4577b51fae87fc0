package common

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("authentication required")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrForbidden             = errors.New("forbidden")
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateEmail        = errors.New("email already in use")
	ErrDuplicateRegistration = errors.New("user already registered for this event")
	ErrInternalServer        = errors.New("internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	// Conflicting state is reported as 400, matching the published API.
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateRegistration) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// MessageFromError returns the client-facing message for err. Server errors
// never leak their cause.
func MessageFromError(err error) string {
	if HTTPStatusFromError(err) >= http.StatusInternalServerError {
		return ErrInternalServer.Error()
	}
	return err.Error()
}
