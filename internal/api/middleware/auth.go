package middleware

import (
	"net/http"
	"strings"

	"github.com/rutinasapp/rutinas-api/internal/api/shared"
	"github.com/rutinasapp/rutinas-api/internal/service"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token from the Authorization header,
// resolves it to an active user, and stores the user in the request
// context. Every failure mode answers with the same 401 so callers learn
// nothing about why the credential was rejected.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondUnauthorized(w, r)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondUnauthorized(w, r)
			return
		}

		user, err := m.authService.Resolve(r.Context(), parts[1])
		if err != nil {
			respondUnauthorized(w, r)
			return
		}

		ctx := shared.WithCurrentUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// respondUnauthorized writes the uniform 401 used for every
// authentication failure. The WWW-Authenticate header tells clients the
// expected scheme.
func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
}
