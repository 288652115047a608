package domain

import (
	"fmt"
	"time"
)

// Common validation errors for Routine.
var ErrEmptyRoutineName = fmt.Errorf("%w: routine name cannot be empty", ErrValidation)

// Routine is the aggregate root for a user's workout routine and its
// exercises. Exercises are owned exclusively by their routine and are
// persisted and deleted together with it.
type Routine struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Exercises   []*Exercise `json:"exercises"`
}

// NewRoutine creates a new Routine aggregate owned by the given user.
// Every child exercise is tagged with the routine's owner. The store
// assigns the routine and exercise IDs on first save.
// Returns an error if validation of the routine or any child fails.
func NewRoutine(ownerID int64, name string, description *string, exercises []*Exercise) (*Routine, error) {
	routine := &Routine{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Exercises:   exercises,
	}

	for _, e := range routine.Exercises {
		e.OwnerID = ownerID
	}

	if err := routine.Validate(); err != nil {
		return nil, err
	}

	return routine, nil
}

// Validate checks if the Routine and all its child exercises have valid
// data, including the owner invariant on every child.
func (r *Routine) Validate() error {
	if r.Name == "" {
		return ErrEmptyRoutineName
	}
	for _, e := range r.Exercises {
		if err := e.Validate(); err != nil {
			return err
		}
		if e.OwnerID != r.OwnerID {
			return ErrOwnerMismatch
		}
	}
	return nil
}

// UpdateBase applies a partial update to the routine's own fields.
// Nil arguments leave the corresponding field untouched.
func (r *Routine) UpdateBase(name, description *string) error {
	if name != nil {
		if *name == "" {
			return ErrEmptyRoutineName
		}
		r.Name = *name
	}
	if description != nil {
		r.Description = description
	}
	return nil
}

// ApplyExercisePatches upserts exercises into the aggregate. A patch
// whose ID matches an existing child overwrites only the fields it
// explicitly provides; any other patch is appended as a new exercise and
// must carry every required field.
func (r *Routine) ApplyExercisePatches(patches []*ExercisePatch) error {
	for _, patch := range patches {
		if existing := r.findExercise(patch.ID); existing != nil {
			if err := patch.Apply(existing); err != nil {
				return err
			}
			continue
		}

		exercise, err := patch.newExercise(r.OwnerID)
		if err != nil {
			return err
		}
		exercise.RoutineID = r.ID
		r.Exercises = append(r.Exercises, exercise)
	}
	return nil
}

// RemoveExercises drops the children whose IDs appear in the given list.
// Unknown IDs are ignored.
func (r *Routine) RemoveExercises(ids []int64) {
	if len(ids) == 0 {
		return
	}

	remove := make(map[int64]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	kept := r.Exercises[:0]
	for _, e := range r.Exercises {
		if !remove[e.ID] {
			kept = append(kept, e)
		}
	}
	r.Exercises = kept
}

// AddExercise appends one exercise to the aggregate, tagging it with the
// routine's owner and ID. Returns an error if the exercise is invalid.
func (r *Routine) AddExercise(exercise *Exercise) error {
	exercise.OwnerID = r.OwnerID
	exercise.RoutineID = r.ID

	if err := exercise.Validate(); err != nil {
		return err
	}

	r.Exercises = append(r.Exercises, exercise)
	return nil
}

// findExercise returns the child with the given ID, or nil. A nil or
// zero ID never matches: those mark new exercises.
func (r *Routine) findExercise(id *int64) *Exercise {
	if id == nil || *id == 0 {
		return nil
	}
	for _, e := range r.Exercises {
		if e.ID == *id {
			return e
		}
	}
	return nil
}
