package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutinasapp/rutinas-api/internal/config"
)

// newTestJWTService builds a service with an injected clock so expiry
// scenarios are deterministic.
func newTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()
		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		require.Error(t, err)
	})

	t.Run("accepts valid config", func(t *testing.T) {
		t.Parallel()
		svc, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "test-secret-that-is-long-enough-for-testing",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	// Setup
	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	userID := int64(42)

	svc := newTestJWTService(secret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	t.Run("generates valid token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, strconv.FormatInt(userID, 10), claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(tokenLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("tokens carry unique IDs", func(t *testing.T) {
		t.Parallel()
		first, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)
		second, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		firstClaims, err := svc.ValidateToken(context.Background(), first)
		require.NoError(t, err)
		secondClaims, err := svc.ValidateToken(context.Background(), second)
		require.NoError(t, err)

		assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokenLifetime := 60 * time.Minute
	secret := "test-secret-that-is-long-enough-for-testing"
	wrongSecret := "wrong-secret-that-is-long-enough-for-testing"
	userID := int64(7)

	svc := newTestJWTService(secret, tokenLifetime, func() time.Time {
		return fixedTime
	})

	// signToken builds a token with arbitrary registered claims for the
	// malformed-subject and tampering cases.
	signToken := func(t *testing.T, key string, claims jwt.RegisteredClaims) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(key))
		require.NoError(t, err)
		return signed
	}

	validClaims := jwt.RegisteredClaims{
		Subject:   "7",
		IssuedAt:  jwt.NewNumericDate(fixedTime),
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(tokenLifetime)),
		ID:        "token-id",
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "valid token",
			token: func(t *testing.T) string {
				token, err := svc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := validClaims
				expired.IssuedAt = jwt.NewNumericDate(fixedTime.Add(-2 * time.Hour))
				expired.ExpiresAt = jwt.NewNumericDate(fixedTime.Add(-1 * time.Hour))
				return signToken(t, secret, expired)
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "not yet valid token",
			token: func(t *testing.T) string {
				future := validClaims
				future.NotBefore = jwt.NewNumericDate(fixedTime.Add(1 * time.Hour))
				return signToken(t, secret, future)
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				return signToken(t, wrongSecret, validClaims)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			token: func(t *testing.T) string {
				return "not-a-jwt"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "non-numeric subject",
			token: func(t *testing.T) string {
				bad := validClaims
				bad.Subject = "someone@example.com"
				return signToken(t, secret, bad)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty subject",
			token: func(t *testing.T) string {
				bad := validClaims
				bad.Subject = ""
				return signToken(t, secret, bad)
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			claims, err := svc.ValidateToken(context.Background(), tc.token(t))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	secret := "test-secret-that-is-long-enough-for-testing"

	svc := newTestJWTService(secret, time.Hour, func() time.Time {
		return fixedTime
	})

	// alg=none tokens must never validate regardless of claims.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
