// Package service provides application-level services for authentication
// and for managing routines and their exercises.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with context via fmt.Errorf and %w
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvalidCredentials indicates an authentication attempt failed.
	// Unknown username, wrong password, and inactive account all collapse
	// into this one error so callers cannot distinguish which it was.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUsernameTaken indicates a registration attempt used a username
	// that already exists.
	ErrUsernameTaken = errors.New("username is already registered")

	// ErrRoutineNotFound indicates the requested routine does not exist
	// for the requesting user. Routines owned by other users also surface
	// as this error, so their existence is not revealed.
	// API layer should map this to HTTP 404 Not Found.
	ErrRoutineNotFound = errors.New("routine not found")

	// ErrRoutineNameExists indicates the user already has a routine with
	// the requested name. API layer should map this to HTTP 409 Conflict.
	ErrRoutineNameExists = errors.New("a routine with that name already exists")

	// ErrExerciseNotFound indicates the requested exercise does not exist
	// for the requesting user.
	// API layer should map this to HTTP 404 Not Found.
	ErrExerciseNotFound = errors.New("exercise not found")
)
