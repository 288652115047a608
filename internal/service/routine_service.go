package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/store"
)

// txRunner runs a function inside a database transaction. Injectable so
// unit tests can bypass the real database.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

// UpdateRoutineParams carries a partial update for a routine aggregate.
// Nil fields leave the corresponding attribute untouched.
type UpdateRoutineParams struct {
	// Name replaces the routine name when non-nil.
	Name *string

	// Description replaces the routine description when non-nil.
	Description *string

	// ExercisePatches modifies existing exercises (entries with an ID that
	// matches a child) or creates new ones (entries without a matching ID).
	ExercisePatches []*domain.ExercisePatch

	// RemoveExerciseIDs lists child exercises to remove. Unknown IDs are
	// ignored.
	RemoveExerciseIDs []int64
}

// RoutineService provides routine and exercise operations, all scoped to
// the requesting owner.
type RoutineService interface {
	// Create creates a routine with its initial exercises.
	// Returns ErrRoutineNameExists if the owner already has a routine with
	// the same name.
	Create(ctx context.Context, ownerID int64, name string, description *string, exercises []*domain.Exercise) (*domain.Routine, error)

	// List returns a page of the owner's routines.
	List(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error)

	// GetByID returns the owner's routine with the given ID.
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Routine, error)

	// GetByName returns the owner's routine with the given exact name.
	GetByName(ctx context.Context, ownerID int64, name string) (*domain.Routine, error)

	// SearchByName returns the owner's routines whose names contain the
	// term, case-insensitively. A blank term returns an empty list without
	// touching storage.
	SearchByName(ctx context.Context, ownerID int64, term string) ([]*domain.Routine, error)

	// Update applies a partial update to a routine aggregate in a single
	// transaction. Either every change lands or none do.
	Update(ctx context.Context, ownerID, id int64, params UpdateRoutineParams) (*domain.Routine, error)

	// Delete removes a routine and all of its exercises.
	Delete(ctx context.Context, ownerID, id int64) error

	// AddExercise appends an exercise to a routine and returns the updated
	// aggregate.
	AddExercise(ctx context.Context, ownerID, routineID int64, exercise *domain.Exercise) (*domain.Routine, error)

	// UpdateExercise applies a partial update to a single exercise row.
	UpdateExercise(ctx context.Context, ownerID, exerciseID int64, patch *domain.ExercisePatch) (*domain.Exercise, error)

	// DeleteExercise removes a single exercise row.
	DeleteExercise(ctx context.Context, ownerID, exerciseID int64) error
}

// RoutineServiceImpl implements the RoutineService interface
type RoutineServiceImpl struct {
	routineStore store.RoutineStore
	db           *sql.DB
	runInTx      txRunner
	logger       *slog.Logger
}

// Ensure RoutineServiceImpl implements RoutineService interface
var _ RoutineService = (*RoutineServiceImpl)(nil)

// NewRoutineService creates a new RoutineService
func NewRoutineService(routineStore store.RoutineStore, db *sql.DB, logger *slog.Logger) *RoutineServiceImpl {
	return &RoutineServiceImpl{
		routineStore: routineStore,
		db:           db,
		runInTx:      store.RunInTransaction,
		logger:       logger.With("component", "routine_service"),
	}
}

// Create creates a routine with its initial exercises.
// Uses a transaction so the base row and its exercises land together.
func (s *RoutineServiceImpl) Create(
	ctx context.Context,
	ownerID int64,
	name string,
	description *string,
	exercises []*domain.Exercise,
) (*domain.Routine, error) {
	routine, err := domain.NewRoutine(ownerID, name, description, exercises)
	if err != nil {
		s.logger.Debug("invalid routine data during create",
			"error", err,
			"owner_id", ownerID)
		return nil, err
	}

	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.routineStore.WithTx(tx).CreateRoutine(ctx, routine)
	})
	if err != nil {
		if errors.Is(err, store.ErrRoutineNameExists) {
			s.logger.Debug("attempted to create routine with existing name",
				"name", name,
				"owner_id", ownerID)
			return nil, ErrRoutineNameExists
		}
		s.logger.Error("failed to create routine",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}

	s.logger.Info("routine created",
		"routine_id", routine.ID,
		"owner_id", ownerID,
		"exercise_count", len(routine.Exercises))
	return routine, nil
}

// List returns a page of the owner's routines.
func (s *RoutineServiceImpl) List(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error) {
	routines, err := s.routineStore.ListByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		s.logger.Error("failed to list routines",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	return routines, nil
}

// GetByID returns the owner's routine with the given ID.
func (s *RoutineServiceImpl) GetByID(ctx context.Context, ownerID, id int64) (*domain.Routine, error) {
	routine, err := s.routineStore.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrRoutineNotFound) {
			return nil, ErrRoutineNotFound
		}
		s.logger.Error("failed to get routine",
			"error", err,
			"routine_id", id,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to get routine: %w", err)
	}
	return routine, nil
}

// GetByName returns the owner's routine with the given exact name.
func (s *RoutineServiceImpl) GetByName(ctx context.Context, ownerID int64, name string) (*domain.Routine, error) {
	routine, err := s.routineStore.GetByName(ctx, name, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrRoutineNotFound) {
			return nil, ErrRoutineNotFound
		}
		s.logger.Error("failed to get routine by name",
			"error", err,
			"name", name,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to get routine by name: %w", err)
	}
	return routine, nil
}

// SearchByName returns the owner's routines whose names contain the term.
// A blank term short-circuits to an empty result.
func (s *RoutineServiceImpl) SearchByName(ctx context.Context, ownerID int64, term string) ([]*domain.Routine, error) {
	clean := strings.TrimSpace(term)
	if clean == "" {
		return []*domain.Routine{}, nil
	}

	routines, err := s.routineStore.SearchByName(ctx, clean, ownerID)
	if err != nil {
		s.logger.Error("failed to search routines",
			"error", err,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to search routines: %w", err)
	}
	return routines, nil
}

// Update applies a partial update to a routine aggregate. The load, the
// in-memory mutation, and the rewrite all happen inside one transaction,
// so concurrent updates serialize at the database and a failed step
// leaves the routine untouched.
func (s *RoutineServiceImpl) Update(
	ctx context.Context,
	ownerID, id int64,
	params UpdateRoutineParams,
) (*domain.Routine, error) {
	var updated *domain.Routine

	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.routineStore.WithTx(tx)

		routine, err := txStore.GetByID(ctx, id, ownerID)
		if err != nil {
			return err
		}

		if err := routine.UpdateBase(params.Name, params.Description); err != nil {
			return err
		}
		if err := routine.ApplyExercisePatches(params.ExercisePatches); err != nil {
			return err
		}
		routine.RemoveExercises(params.RemoveExerciseIDs)

		if err := txStore.UpdateRoutine(ctx, routine); err != nil {
			return err
		}

		// Reload so new exercise IDs and child ordering come from storage.
		updated, err = txStore.GetByID(ctx, id, ownerID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoutineNotFound):
			return nil, ErrRoutineNotFound
		case errors.Is(err, store.ErrRoutineNameExists):
			s.logger.Debug("attempted to rename routine to existing name",
				"routine_id", id,
				"owner_id", ownerID)
			return nil, ErrRoutineNameExists
		case errors.Is(err, domain.ErrValidation):
			return nil, err
		}
		s.logger.Error("failed to update routine",
			"error", err,
			"routine_id", id,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to update routine: %w", err)
	}

	s.logger.Info("routine updated",
		"routine_id", id,
		"owner_id", ownerID,
		"exercise_count", len(updated.Exercises))
	return updated, nil
}

// Delete removes a routine and all of its exercises.
func (s *RoutineServiceImpl) Delete(ctx context.Context, ownerID, id int64) error {
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.routineStore.WithTx(tx).DeleteRoutine(ctx, id, ownerID)
	})
	if err != nil {
		if errors.Is(err, store.ErrRoutineNotFound) {
			return ErrRoutineNotFound
		}
		s.logger.Error("failed to delete routine",
			"error", err,
			"routine_id", id,
			"owner_id", ownerID)
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	s.logger.Info("routine deleted",
		"routine_id", id,
		"owner_id", ownerID)
	return nil
}

// AddExercise appends an exercise to a routine and returns the updated
// aggregate. The aggregate is loaded and rewritten inside one transaction.
func (s *RoutineServiceImpl) AddExercise(
	ctx context.Context,
	ownerID, routineID int64,
	exercise *domain.Exercise,
) (*domain.Routine, error) {
	var updated *domain.Routine

	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.routineStore.WithTx(tx)

		routine, err := txStore.GetByID(ctx, routineID, ownerID)
		if err != nil {
			return err
		}

		if err := routine.AddExercise(exercise); err != nil {
			return err
		}
		if err := txStore.UpdateRoutine(ctx, routine); err != nil {
			return err
		}

		updated, err = txStore.GetByID(ctx, routineID, ownerID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoutineNotFound):
			return nil, ErrRoutineNotFound
		case errors.Is(err, domain.ErrValidation):
			return nil, err
		}
		s.logger.Error("failed to add exercise",
			"error", err,
			"routine_id", routineID,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to add exercise: %w", err)
	}

	s.logger.Info("exercise added",
		"routine_id", routineID,
		"owner_id", ownerID,
		"exercise_count", len(updated.Exercises))
	return updated, nil
}

// UpdateExercise applies a partial update to a single exercise row,
// without touching the rest of its routine.
func (s *RoutineServiceImpl) UpdateExercise(
	ctx context.Context,
	ownerID, exerciseID int64,
	patch *domain.ExercisePatch,
) (*domain.Exercise, error) {
	var updated *domain.Exercise

	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.routineStore.WithTx(tx)

		exercise, err := txStore.GetExercise(ctx, exerciseID, ownerID)
		if err != nil {
			return err
		}

		if err := patch.Apply(exercise); err != nil {
			return err
		}
		if err := txStore.UpdateExercise(ctx, exercise); err != nil {
			return err
		}

		updated = exercise
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrExerciseNotFound):
			return nil, ErrExerciseNotFound
		case errors.Is(err, domain.ErrValidation):
			return nil, err
		}
		s.logger.Error("failed to update exercise",
			"error", err,
			"exercise_id", exerciseID,
			"owner_id", ownerID)
		return nil, fmt.Errorf("failed to update exercise: %w", err)
	}

	s.logger.Info("exercise updated",
		"exercise_id", exerciseID,
		"owner_id", ownerID)
	return updated, nil
}

// DeleteExercise removes a single exercise row.
func (s *RoutineServiceImpl) DeleteExercise(ctx context.Context, ownerID, exerciseID int64) error {
	err := s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.routineStore.WithTx(tx).DeleteExercise(ctx, exerciseID, ownerID)
	})
	if err != nil {
		if errors.Is(err, store.ErrExerciseNotFound) {
			return ErrExerciseNotFound
		}
		s.logger.Error("failed to delete exercise",
			"error", err,
			"exercise_id", exerciseID,
			"owner_id", ownerID)
		return fmt.Errorf("failed to delete exercise: %w", err)
	}

	s.logger.Info("exercise deleted",
		"exercise_id", exerciseID,
		"owner_id", ownerID)
	return nil
}
