package api

import (
	"time"

	"github.com/rutinasapp/rutinas-api/internal/domain"
)

// Common request/response structures. JSON field names are the contract
// the web client depends on, so they stay in Spanish.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string  `json:"username"  validate:"required,max=100"`
	Password string  `json:"password"  validate:"required,min=8"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

// UserResponse defines how a user is exposed to clients. The password
// hash never leaves the server.
type UserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	IsActive bool    `json:"is_active"`
}

// NewUserResponse maps a domain user to its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		IsActive: user.IsActive,
	}
}

// ExerciseCreateRequest defines the payload for adding an exercise,
// either inside a new routine or through the add-exercise endpoint.
type ExerciseCreateRequest struct {
	Name     string   `json:"nombre"       validate:"required"`
	Day      string   `json:"dia_semana"   validate:"required"`
	Sets     int      `json:"series"       validate:"required,gt=0"`
	Reps     int      `json:"repeticiones" validate:"required,gt=0"`
	Weight   *float64 `json:"peso"`
	Notes    *string  `json:"notas"`
	Position int      `json:"orden"        validate:"gte=0"`
}

// ToDomain builds the domain exercise owned by the given user.
func (r ExerciseCreateRequest) ToDomain(ownerID int64) (*domain.Exercise, error) {
	day, err := domain.ParseWeekday(r.Day)
	if err != nil {
		return nil, err
	}
	return domain.NewExercise(ownerID, r.Name, day, r.Sets, r.Reps, r.Weight, r.Notes, r.Position)
}

// ExercisePatchRequest defines a partial exercise update. Absent fields
// leave the stored value untouched. An entry with a matching ID modifies
// that exercise; an entry without one creates a new exercise, in which
// case name, day, sets, reps, and position are required.
type ExercisePatchRequest struct {
	ID       *int64   `json:"id"`
	Name     *string  `json:"nombre"       validate:"omitempty,max=100"`
	Day      *string  `json:"dia_semana"`
	Sets     *int     `json:"series"       validate:"omitempty,gt=0"`
	Reps     *int     `json:"repeticiones" validate:"omitempty,gt=0"`
	Weight   *float64 `json:"peso"`
	Notes    *string  `json:"notas"`
	Position *int     `json:"orden"        validate:"omitempty,gte=0"`
}

// ToDomain converts the wire patch into a domain patch.
func (r ExercisePatchRequest) ToDomain() (*domain.ExercisePatch, error) {
	patch := &domain.ExercisePatch{
		ID:       r.ID,
		Name:     r.Name,
		Sets:     r.Sets,
		Reps:     r.Reps,
		Weight:   r.Weight,
		Notes:    r.Notes,
		Position: r.Position,
	}
	if r.Day != nil {
		day, err := domain.ParseWeekday(*r.Day)
		if err != nil {
			return nil, err
		}
		patch.Day = &day
	}
	return patch, nil
}

// ExerciseResponse defines how an exercise is exposed to clients.
type ExerciseResponse struct {
	ID        int64    `json:"id"`
	RoutineID int64    `json:"rutina_id"`
	Name      string   `json:"nombre"`
	Day       string   `json:"dia_semana"`
	Sets      int      `json:"series"`
	Reps      int      `json:"repeticiones"`
	Weight    *float64 `json:"peso"`
	Notes     *string  `json:"notas"`
	Position  int      `json:"orden"`
}

// NewExerciseResponse maps a domain exercise to its response shape.
func NewExerciseResponse(exercise *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:        exercise.ID,
		RoutineID: exercise.RoutineID,
		Name:      exercise.Name,
		Day:       string(exercise.Day),
		Sets:      exercise.Sets,
		Reps:      exercise.Reps,
		Weight:    exercise.Weight,
		Notes:     exercise.Notes,
		Position:  exercise.Position,
	}
}

// RoutineCreateRequest defines the payload for creating a routine with
// its initial exercises.
type RoutineCreateRequest struct {
	Name        string                  `json:"nombre"      validate:"required"`
	Description *string                 `json:"descripcion"`
	Exercises   []ExerciseCreateRequest `json:"ejercicios"  validate:"omitempty,dive"`
}

// RoutineUpdateRequest defines a partial routine update. Absent fields
// leave the corresponding attribute untouched.
type RoutineUpdateRequest struct {
	Name            *string                `json:"nombre"                         validate:"omitempty,max=100"`
	Description     *string                `json:"descripcion"`
	ExercisePatches []ExercisePatchRequest `json:"ejercicios_a_modificar_o_crear" validate:"omitempty,dive"`
	RemoveIDs       []int64                `json:"ids_ejercicios_a_eliminar"`
}

// RoutineResponse defines how a routine and its exercises are exposed to
// clients.
type RoutineResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"nombre"`
	Description *string            `json:"descripcion"`
	CreatedAt   time.Time          `json:"fecha_creacion"`
	Exercises   []ExerciseResponse `json:"ejercicios"`
}

// NewRoutineResponse maps a domain routine to its response shape. The
// exercises list is always present, even when empty.
func NewRoutineResponse(routine *domain.Routine) RoutineResponse {
	exercises := make([]ExerciseResponse, 0, len(routine.Exercises))
	for _, exercise := range routine.Exercises {
		exercises = append(exercises, NewExerciseResponse(exercise))
	}
	return RoutineResponse{
		ID:          routine.ID,
		Name:        routine.Name,
		Description: routine.Description,
		CreatedAt:   routine.CreatedAt,
		Exercises:   exercises,
	}
}

// NewRoutineListResponse maps a list of routines, keeping the JSON array
// non-null when the list is empty.
func NewRoutineListResponse(routines []*domain.Routine) []RoutineResponse {
	responses := make([]RoutineResponse, 0, len(routines))
	for _, routine := range routines {
		responses = append(responses, NewRoutineResponse(routine))
	}
	return responses
}
