package api

import (
	"errors"
	"net/http"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/auth/register.
// Responds 201 with the created user, or 400 for invalid data and
// duplicate usernames alike.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ValidateRequest(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req.Username, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, domain.ErrValidation) {
			RespondWithMappedError(w, r, err)
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to register user", err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// Token handles POST /api/auth/token.
// The request body is form-encoded with username and password fields, the
// way OAuth2 password-grant clients send credentials. Every failed login
// answers with the same 401.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondLoginFailed(w, r)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		h.respondLoginFailed(w, r)
		return
	}

	user, err := h.authService.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.respondLoginFailed(w, r)
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate", err)
		return
	}

	token, err := h.authService.IssueToken(r.Context(), user)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, token)
}

// Me handles GET /api/auth/me.
// Returns the authenticated user placed in the context by the
// authentication middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// respondLoginFailed writes the uniform 401 for failed logins, with the
// WWW-Authenticate header OAuth2 clients expect.
func (h *AuthHandler) respondLoginFailed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	RespondWithError(w, r, http.StatusUnauthorized, "Incorrect username or password")
}
