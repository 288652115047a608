package domain

import "fmt"

// Common validation errors for Exercise. All wrap ErrValidation so
// callers can classify them with a single errors.Is check.
var (
	ErrEmptyExerciseName = fmt.Errorf("%w: exercise name cannot be empty", ErrValidation)
	ErrInvalidSets       = fmt.Errorf("%w: exercise sets must be a positive integer", ErrValidation)
	ErrInvalidReps       = fmt.Errorf("%w: exercise reps must be a positive integer", ErrValidation)
	ErrOwnerMismatch     = fmt.Errorf("%w: exercise owner must match the routine owner", ErrValidation)
)

// Exercise is a child entity of a Routine, individually addressable by ID.
// OwnerID is denormalized from the parent routine so ownership checks do
// not require loading the aggregate.
type Exercise struct {
	ID        int64    `json:"id"`
	RoutineID int64    `json:"routine_id"`
	OwnerID   int64    `json:"owner_id"`
	Name      string   `json:"name"`
	Day       Weekday  `json:"day_of_week"`
	Sets      int      `json:"sets"`
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
	Position  int      `json:"position"`
}

// NewExercise creates a new Exercise owned by the given user. The routine
// ID is set when the exercise is attached to its parent aggregate; the
// store assigns the exercise ID. Returns an error if validation fails.
func NewExercise(
	ownerID int64,
	name string,
	day Weekday,
	sets, reps int,
	weight *float64,
	notes *string,
	position int,
) (*Exercise, error) {
	exercise := &Exercise{
		OwnerID:  ownerID,
		Name:     name,
		Day:      day,
		Sets:     sets,
		Reps:     reps,
		Weight:   weight,
		Notes:    notes,
		Position: position,
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// Validate checks if the Exercise has valid data.
// Returns an error if any field fails validation.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return ErrEmptyExerciseName
	}
	if !e.Day.Valid() {
		return ErrInvalidWeekday
	}
	if e.Sets <= 0 {
		return ErrInvalidSets
	}
	if e.Reps <= 0 {
		return ErrInvalidReps
	}
	return nil
}

// ExercisePatch carries a partial update for an exercise. Nil fields are
// left untouched when the patch is applied. A nil ID marks the entry as a
// new exercise to append rather than an update of an existing one.
type ExercisePatch struct {
	ID       *int64
	Name     *string
	Day      *Weekday
	Sets     *int
	Reps     *int
	Weight   *float64
	Notes    *string
	Position *int
}

// Apply overwrites the exercise's fields with the values the patch
// provides, leaving unset fields as they are. The mutated exercise is
// re-validated afterwards.
func (p *ExercisePatch) Apply(e *Exercise) error {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Day != nil {
		e.Day = *p.Day
	}
	if p.Sets != nil {
		e.Sets = *p.Sets
	}
	if p.Reps != nil {
		e.Reps = *p.Reps
	}
	if p.Weight != nil {
		e.Weight = p.Weight
	}
	if p.Notes != nil {
		e.Notes = p.Notes
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	return e.Validate()
}

// newExercise builds a fresh Exercise from a patch describing a creation
// (no ID, or an ID that matches no existing child). Every required field
// must be present.
func (p *ExercisePatch) newExercise(ownerID int64) (*Exercise, error) {
	if p.Name == nil || p.Day == nil || p.Sets == nil || p.Reps == nil || p.Position == nil {
		return nil, ErrValidation
	}
	return NewExercise(ownerID, *p.Name, *p.Day, *p.Sets, *p.Reps, p.Weight, p.Notes, *p.Position)
}
