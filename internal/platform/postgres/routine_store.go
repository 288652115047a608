package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/platform/logger"
	"github.com/rutinasapp/rutinas-api/internal/store"
)

// PostgresRoutineStore implements the store.RoutineStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRoutineStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoutineStore creates a new PostgreSQL implementation of the
// RoutineStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresRoutineStore(db store.DBTX, logger *slog.Logger) *PostgresRoutineStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRoutineStore{
		db:     db,
		logger: logger.With(slog.String("component", "routine_store")),
	}
}

// Ensure PostgresRoutineStore implements store.RoutineStore interface
var _ store.RoutineStore = (*PostgresRoutineStore)(nil)

// CreateRoutine implements store.RoutineStore.CreateRoutine
// It inserts the base row and every child exercise, filling in the
// store-assigned IDs. Returns store.ErrRoutineNameExists if the owner
// already has a routine with the same name.
func (s *PostgresRoutineStore) CreateRoutine(ctx context.Context, routine *domain.Routine) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := routine.Validate(); err != nil {
		log.Warn("routine validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", routine.OwnerID))
		return err
	}

	query := `
		INSERT INTO routines (user_id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		routine.OwnerID,
		routine.Name,
		routine.Description,
		routine.CreatedAt,
	).Scan(&routine.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("routine name already exists for owner",
				slog.String("name", routine.Name),
				slog.Int64("owner_id", routine.OwnerID))
			return fmt.Errorf("%w: %v", store.ErrRoutineNameExists, err)
		}
		log.Error("failed to create routine",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", routine.OwnerID))
		return MapError(err)
	}

	for _, exercise := range routine.Exercises {
		exercise.RoutineID = routine.ID
		if err := s.insertExercise(ctx, exercise); err != nil {
			log.Error("failed to insert exercise during routine create",
				slog.String("error", err.Error()),
				slog.Int64("routine_id", routine.ID))
			return err
		}
	}

	log.Info("routine created successfully",
		slog.Int64("routine_id", routine.ID),
		slog.Int64("owner_id", routine.OwnerID),
		slog.Int("exercise_count", len(routine.Exercises)))
	return nil
}

// GetByID implements store.RoutineStore.GetByID
// Returns store.ErrRoutineNotFound if the routine does not exist for the owner.
func (s *PostgresRoutineStore) GetByID(ctx context.Context, id, ownerID int64) (*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM routines
		WHERE id = $1 AND user_id = $2
	`
	return s.getRoutine(ctx, query, id, ownerID)
}

// GetByName implements store.RoutineStore.GetByName
// The match is exact and case-sensitive.
// Returns store.ErrRoutineNotFound if the routine does not exist for the owner.
func (s *PostgresRoutineStore) GetByName(ctx context.Context, name string, ownerID int64) (*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM routines
		WHERE name = $1 AND user_id = $2
	`
	return s.getRoutine(ctx, query, name, ownerID)
}

// ListByOwner implements store.RoutineStore.ListByOwner
// Pagination is plain OFFSET/LIMIT with no ORDER BY, matching the
// store-default ordering contract; page stability under concurrent
// inserts is not guaranteed.
func (s *PostgresRoutineStore) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM routines
		WHERE user_id = $1
		OFFSET $2 LIMIT $3
	`
	return s.listRoutines(ctx, query, ownerID, skip, limit)
}

// SearchByName implements store.RoutineStore.SearchByName
// It performs a case-insensitive substring match scoped to the owner.
func (s *PostgresRoutineStore) SearchByName(ctx context.Context, term string, ownerID int64) ([]*domain.Routine, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM routines
		WHERE user_id = $1 AND name ILIKE '%' || $2 || '%'
	`
	return s.listRoutines(ctx, query, ownerID, term)
}

// UpdateRoutine implements store.RoutineStore.UpdateRoutine
// It rewrites the aggregate: base row update, in-place child updates,
// inserts for children without IDs, and deletes for persisted children
// missing from the aggregate. Callers that need atomicity must run this
// on a transaction-bound store (WithTx).
func (s *PostgresRoutineStore) UpdateRoutine(ctx context.Context, routine *domain.Routine) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := routine.Validate(); err != nil {
		log.Warn("routine validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("routine_id", routine.ID))
		return err
	}

	query := `
		UPDATE routines
		SET name = $1, description = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		routine.Name,
		routine.Description,
		routine.ID,
		routine.OwnerID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrRoutineNameExists, err)
		}
		log.Error("failed to update routine base row",
			slog.String("error", err.Error()),
			slog.Int64("routine_id", routine.ID))
		return MapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrRoutineNotFound
	}

	if err := s.reconcileExercises(ctx, routine); err != nil {
		return err
	}

	log.Info("routine updated successfully",
		slog.Int64("routine_id", routine.ID),
		slog.Int64("owner_id", routine.OwnerID),
		slog.Int("exercise_count", len(routine.Exercises)))
	return nil
}

// DeleteRoutine implements store.RoutineStore.DeleteRoutine
// Child exercises are removed by the ON DELETE CASCADE foreign key.
// Returns store.ErrRoutineNotFound if the routine does not exist for the owner.
func (s *PostgresRoutineStore) DeleteRoutine(ctx context.Context, id, ownerID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM routines WHERE id = $1 AND user_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		log.Error("failed to delete routine",
			slog.String("error", err.Error()),
			slog.Int64("routine_id", id))
		return MapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		log.Debug("routine not found for delete",
			slog.Int64("routine_id", id),
			slog.Int64("owner_id", ownerID))
		return store.ErrRoutineNotFound
	}

	log.Info("routine deleted successfully",
		slog.Int64("routine_id", id),
		slog.Int64("owner_id", ownerID))
	return nil
}

// GetExercise implements store.RoutineStore.GetExercise
// Returns store.ErrExerciseNotFound if the exercise does not exist for the owner.
func (s *PostgresRoutineStore) GetExercise(ctx context.Context, id, ownerID int64) (*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, routine_id, user_id, name, day_of_week, sets, reps, weight, notes, position
		FROM exercises
		WHERE id = $1 AND user_id = $2
	`

	var exercise domain.Exercise
	var day string
	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&exercise.ID,
		&exercise.RoutineID,
		&exercise.OwnerID,
		&exercise.Name,
		&day,
		&exercise.Sets,
		&exercise.Reps,
		&exercise.Weight,
		&exercise.Notes,
		&exercise.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrExerciseNotFound
		}
		log.Error("failed to get exercise",
			slog.String("error", err.Error()),
			slog.Int64("exercise_id", id))
		return nil, MapError(err)
	}

	exercise.Day = domain.Weekday(day)
	return &exercise, nil
}

// UpdateExercise implements store.RoutineStore.UpdateExercise
// It writes the full exercise row, scoped to the owner.
// Returns store.ErrExerciseNotFound if the exercise does not exist for the owner.
func (s *PostgresRoutineStore) UpdateExercise(ctx context.Context, exercise *domain.Exercise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exercise.Validate(); err != nil {
		log.Warn("exercise validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("exercise_id", exercise.ID))
		return err
	}

	query := `
		UPDATE exercises
		SET name = $1, day_of_week = $2, sets = $3, reps = $4, weight = $5, notes = $6, position = $7
		WHERE id = $8 AND user_id = $9
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		exercise.Name,
		string(exercise.Day),
		exercise.Sets,
		exercise.Reps,
		exercise.Weight,
		exercise.Notes,
		exercise.Position,
		exercise.ID,
		exercise.OwnerID,
	)
	if err != nil {
		log.Error("failed to update exercise",
			slog.String("error", err.Error()),
			slog.Int64("exercise_id", exercise.ID))
		return MapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrExerciseNotFound
	}

	return nil
}

// DeleteExercise implements store.RoutineStore.DeleteExercise
// Returns store.ErrExerciseNotFound if the exercise does not exist for the owner.
func (s *PostgresRoutineStore) DeleteExercise(ctx context.Context, id, ownerID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM exercises WHERE id = $1 AND user_id = $2`,
		id,
		ownerID,
	)
	if err != nil {
		log.Error("failed to delete exercise",
			slog.String("error", err.Error()),
			slog.Int64("exercise_id", id))
		return MapError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrExerciseNotFound
	}

	log.Info("exercise deleted successfully",
		slog.Int64("exercise_id", id),
		slog.Int64("owner_id", ownerID))
	return nil
}

// WithTx implements store.RoutineStore.WithTx
// It returns a new store bound to the given transaction.
func (s *PostgresRoutineStore) WithTx(tx *sql.Tx) store.RoutineStore {
	return &PostgresRoutineStore{
		db:     tx,
		logger: s.logger,
	}
}

// getRoutine loads a single routine plus its exercises using the given
// base-row query and arguments.
func (s *PostgresRoutineStore) getRoutine(ctx context.Context, query string, args ...any) (*domain.Routine, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var routine domain.Routine
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&routine.ID,
		&routine.OwnerID,
		&routine.Name,
		&routine.Description,
		&routine.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRoutineNotFound
		}
		log.Error("failed to get routine",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if err := s.loadExercises(ctx, &routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

// listRoutines loads routines plus their exercises using the given
// base-row query and arguments.
func (s *PostgresRoutineStore) listRoutines(ctx context.Context, query string, args ...any) ([]*domain.Routine, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list routines",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	routines := []*domain.Routine{}
	for rows.Next() {
		var routine domain.Routine
		if err := rows.Scan(
			&routine.ID,
			&routine.OwnerID,
			&routine.Name,
			&routine.Description,
			&routine.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		routines = append(routines, &routine)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, routine := range routines {
		if err := s.loadExercises(ctx, routine); err != nil {
			return nil, err
		}
	}
	return routines, nil
}

// loadExercises fills in the routine's child exercises, ordered by ID so
// the collection keeps insertion order.
func (s *PostgresRoutineStore) loadExercises(ctx context.Context, routine *domain.Routine) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, routine_id, user_id, name, day_of_week, sets, reps, weight, notes, position
		FROM exercises
		WHERE routine_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, routine.ID)
	if err != nil {
		log.Error("failed to load exercises",
			slog.String("error", err.Error()),
			slog.Int64("routine_id", routine.ID))
		return MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	routine.Exercises = []*domain.Exercise{}
	for rows.Next() {
		var exercise domain.Exercise
		var day string
		if err := rows.Scan(
			&exercise.ID,
			&exercise.RoutineID,
			&exercise.OwnerID,
			&exercise.Name,
			&day,
			&exercise.Sets,
			&exercise.Reps,
			&exercise.Weight,
			&exercise.Notes,
			&exercise.Position,
		); err != nil {
			return MapError(err)
		}
		exercise.Day = domain.Weekday(day)
		routine.Exercises = append(routine.Exercises, &exercise)
	}
	return MapError(rows.Err())
}

// insertExercise inserts one exercise row and fills in its ID.
func (s *PostgresRoutineStore) insertExercise(ctx context.Context, exercise *domain.Exercise) error {
	query := `
		INSERT INTO exercises (routine_id, user_id, name, day_of_week, sets, reps, weight, notes, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		exercise.RoutineID,
		exercise.OwnerID,
		exercise.Name,
		string(exercise.Day),
		exercise.Sets,
		exercise.Reps,
		exercise.Weight,
		exercise.Notes,
		exercise.Position,
	).Scan(&exercise.ID)
	return MapError(err)
}

// reconcileExercises makes the exercises table match the aggregate's
// child collection: update rows that are still present, insert children
// without IDs, delete rows the aggregate no longer contains.
func (s *PostgresRoutineStore) reconcileExercises(ctx context.Context, routine *domain.Routine) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing := make(map[int64]bool)
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id FROM exercises WHERE routine_id = $1`,
		routine.ID,
	)
	if err != nil {
		return MapError(err)
	}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return MapError(err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return MapError(err)
	}
	if err := rows.Close(); err != nil {
		return MapError(err)
	}

	kept := make(map[int64]bool, len(routine.Exercises))
	for _, exercise := range routine.Exercises {
		exercise.RoutineID = routine.ID

		if exercise.ID != 0 && existing[exercise.ID] {
			kept[exercise.ID] = true
			if err := s.UpdateExercise(ctx, exercise); err != nil {
				return err
			}
			continue
		}

		exercise.ID = 0
		if err := s.insertExercise(ctx, exercise); err != nil {
			return err
		}
		kept[exercise.ID] = true
	}

	for id := range existing {
		if kept[id] {
			continue
		}
		if err := s.DeleteExercise(ctx, id, routine.OwnerID); err != nil {
			return err
		}
		log.Debug("removed exercise during aggregate rewrite",
			slog.Int64("exercise_id", id),
			slog.Int64("routine_id", routine.ID))
	}

	return nil
}
