package domain

import (
	"fmt"
	"time"
)

// Common validation errors for User. All wrap ErrValidation so callers
// can classify them with a single errors.Is check.
var (
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong     = fmt.Errorf("%w: username must be at most 100 characters long", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// maxUsernameLength matches the users.username column width.
const maxUsernameLength = 100

// User represents a registered user of the application.
// The ID is assigned by the store on creation.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	FullName       *string   `json:"full_name,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username and already-hashed
// password. The caller is responsible for hashing the password before
// constructing the user. New users are active; the store assigns the ID.
// Returns an error if validation fails.
func NewUser(username, hashedPassword string, fullName *string) (*User, error) {
	user := &User{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullName,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}
