package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutinasapp/rutinas-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("carlos", "$argon2id$fakehash", strPtr("Carlos Gomez"))
		require.NoError(t, err)

		assert.Zero(t, user.ID)
		assert.Equal(t, "carlos", user.Username)
		assert.True(t, user.IsActive)
		assert.False(t, user.CreatedAt.IsZero())
		require.NotNil(t, user.FullName)
		assert.Equal(t, "Carlos Gomez", *user.FullName)
	})

	t.Run("full name is optional", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("carlos", "$argon2id$fakehash", nil)
		require.NoError(t, err)
		assert.Nil(t, user.FullName)
	})

	tests := []struct {
		name           string
		username       string
		hashedPassword string
		wantErr        error
	}{
		{
			name:           "empty username",
			username:       "",
			hashedPassword: "$argon2id$fakehash",
			wantErr:        domain.ErrEmptyUsername,
		},
		{
			name:           "empty hashed password",
			username:       "carlos",
			hashedPassword: "",
			wantErr:        domain.ErrEmptyHashedPassword,
		},
		{
			name:           "username too long",
			username:       strings.Repeat("x", 101),
			hashedPassword: "$argon2id$fakehash",
			wantErr:        domain.ErrUsernameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			user, err := domain.NewUser(tt.username, tt.hashedPassword, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
		})
	}
}
