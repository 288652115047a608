package api

import (
	"errors"
	"net/http"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service"
	"github.com/rutinasapp/rutinas-api/internal/service/auth"
	"github.com/rutinasapp/rutinas-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Not found errors. Routines and exercises owned by other users are
	// reported as not found, never as forbidden.
	case errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrRoutineNameExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Incorrect username or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Could not validate credentials"

	// Not found errors
	case errors.Is(err, service.ErrRoutineNotFound):
		return "Routine not found"

	case errors.Is(err, service.ErrExerciseNotFound):
		return "Exercise not found"

	// Conflict errors
	case errors.Is(err, service.ErrRoutineNameExists):
		return "A routine with that name already exists"

	// Bad request errors
	case errors.Is(err, service.ErrUsernameTaken):
		return "Username is already registered"

	// Domain validation messages are static and safe to return verbatim.
	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError is a convenience wrapper that maps the error to
// a status code and safe message before responding.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	// 5xx responses log the underlying error; 4xx responses only need the
	// safe message.
	if status >= http.StatusInternalServerError {
		RespondWithErrorAndLog(w, r, status, message, err)
		return
	}
	RespondWithError(w, r, status, message)
}
