package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rutinasapp/rutinas-api/internal/api/shared"
	"github.com/rutinasapp/rutinas-api/internal/domain"
)

// Aliases into the shared package so handlers read without the package
// qualifier everywhere.
var (
	DecodeJSON             = shared.DecodeJSON
	ValidateRequest        = shared.ValidateRequest
	RespondWithJSON        = shared.RespondWithJSON
	RespondWithError       = shared.RespondWithError
	RespondWithErrorAndLog = shared.RespondWithErrorAndLog
)

// Pagination defaults and bounds for list endpoints.
const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// currentUser extracts the authenticated user placed in the context by
// the authentication middleware. When the middleware did not run, it
// writes the uniform 401 and reports false.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.CurrentUser(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
		return nil, false
	}
	return user, true
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.ErrInvalidID
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// parsePagination reads skip and limit query parameters, applying the
// defaults skip=0 and limit=100. Skip must be >= 0 and limit must be
// between 1 and 1000.
func parsePagination(r *http.Request) (skip, limit int, err error) {
	skip = 0
	limit = defaultListLimit

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return 0, 0, domain.ErrValidation
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return 0, 0, domain.ErrValidation
		}
	}
	return skip, limit, nil
}
