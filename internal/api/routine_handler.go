package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service"
)

// RoutineHandler handles routine and exercise API requests. All
// operations are scoped to the authenticated user.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler with the given dependencies.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		routineService: routineService,
	}
}

// Create handles POST /api/rutinas.
// Responds 201 with the created routine, 409 when the name is taken.
func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req RoutineCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := ValidateRequest(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercises := make([]*domain.Exercise, 0, len(req.Exercises))
	for _, exerciseReq := range req.Exercises {
		exercise, err := exerciseReq.ToDomain(user.ID)
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
		exercises = append(exercises, exercise)
	}

	routine, err := h.routineService.Create(r.Context(), user.ID, req.Name, req.Description, exercises)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, NewRoutineResponse(routine))
}

// List handles GET /api/rutinas.
// Supports skip and limit query parameters, defaulting to 0 and 100.
func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	skip, limit, err := parsePagination(r)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	routines, err := h.routineService.List(r.Context(), user.ID, skip, limit)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewRoutineListResponse(routines))
}

// Search handles GET /api/rutinas/buscar?nombre=term.
// A blank term returns an empty list.
func (h *RoutineHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	routines, err := h.routineService.SearchByName(r.Context(), user.ID, r.URL.Query().Get("nombre"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewRoutineListResponse(routines))
}

// GetByID handles GET /api/rutinas/{rutinaID}.
func (h *RoutineHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	routineID, err := getPathID(r, "rutinaID")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	routine, err := h.routineService.GetByID(r.Context(), user.ID, routineID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewRoutineResponse(routine))
}

// GetByName handles GET /api/rutinas/nombre/{nombre}.
// The match is exact and case-sensitive.
func (h *RoutineHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "nombre")
	if name == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Routine name is required")
		return
	}

	routine, err := h.routineService.GetByName(r.Context(), user.ID, name)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewRoutineResponse(routine))
}

// Update handles PUT /api/rutinas/{rutinaID}.
// Applies a partial update to the routine and its exercises atomically
// and responds with the resulting aggregate.
func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	routineID, err := getPathID(r, "rutinaID")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	var req RoutineUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := ValidateRequest(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patches := make([]*domain.ExercisePatch, 0, len(req.ExercisePatches))
	for _, patchReq := range req.ExercisePatches {
		patch, err := patchReq.ToDomain()
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
		patches = append(patches, patch)
	}

	routine, err := h.routineService.Update(r.Context(), user.ID, routineID, service.UpdateRoutineParams{
		Name:              req.Name,
		Description:       req.Description,
		ExercisePatches:   patches,
		RemoveExerciseIDs: req.RemoveIDs,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewRoutineResponse(routine))
}

// Delete handles DELETE /api/rutinas/{rutinaID}.
// Responds 204 on success; the routine's exercises go with it.
func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	routineID, err := getPathID(r, "rutinaID")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.routineService.Delete(r.Context(), user.ID, routineID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddExercise handles POST /api/rutinas/{rutinaID}/ejercicios.
// Responds 201 with the updated routine aggregate.
func (h *RoutineHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	routineID, err := getPathID(r, "rutinaID")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	var req ExerciseCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := ValidateRequest(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := req.ToDomain(user.ID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	routine, err := h.routineService.AddExercise(r.Context(), user.ID, routineID, exercise)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, NewRoutineResponse(routine))
}

// UpdateExercise handles PUT /api/ejercicios/{ejercicioID}.
// Applies a partial update to a single exercise and responds with the
// updated row.
func (h *RoutineHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	exerciseID, err := getPathID(r, "ejercicioID")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	var req ExercisePatchRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch, err := req.ToDomain()
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	// The ID travels in the path for this endpoint.
	patch.ID = nil

	exercise, err := h.routineService.UpdateExercise(r.Context(), user.ID, exerciseID, patch)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewExerciseResponse(exercise))
}

// DeleteExercise handles DELETE /api/ejercicios/{ejercicioID}.
func (h *RoutineHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	exerciseID, err := getPathID(r, "ejercicioID")
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.routineService.DeleteExercise(r.Context(), user.ID, exerciseID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
