package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutinasapp/rutinas-api/internal/api/shared"
	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service"
)

// fakeAuthService resolves a single known token to a fixed user.
type fakeAuthService struct {
	user  *domain.User
	token string
}

func (f *fakeAuthService) Register(ctx context.Context, username, password string, fullName *string) (*domain.User, error) {
	panic("not used in middleware tests")
}

func (f *fakeAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	panic("not used in middleware tests")
}

func (f *fakeAuthService) IssueToken(ctx context.Context, user *domain.User) (*service.Token, error) {
	panic("not used in middleware tests")
}

func (f *fakeAuthService) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	if tokenString == f.token {
		return f.user, nil
	}
	return nil, service.ErrInvalidCredentials
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: 7, Username: "maria", IsActive: true}
	authService := &fakeAuthService{user: user, token: "valid-token"}
	middleware := NewAuthMiddleware(authService)

	var capturedUser *domain.User
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := shared.CurrentUser(r.Context())
		require.True(t, ok)
		capturedUser = current
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/rutinas", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user, capturedUser)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "missing token part", header: "Bearer"},
		{name: "unknown token", header: "Bearer forged-token"},
	}

	for _, tc := range rejected {
		tc := tc
		t.Run(tc.name+" is rejected uniformly", func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/rutinas", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Contains(t, rec.Body.String(), "Could not validate credentials")
		})
	}

	t.Run("case-insensitive bearer scheme is accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/rutinas", nil)
		req.Header.Set("Authorization", "bearer valid-token")

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
