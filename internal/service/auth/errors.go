package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid, the signature
	// doesn't match, or the subject claim is not a numeric user ID
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrPasswordMismatch indicates the plaintext password does not match the stored hash
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrInvalidHashFormat indicates a stored password hash could not be parsed
	ErrInvalidHashFormat = errors.New("invalid password hash format")
)
