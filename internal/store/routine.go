package store

import (
	"context"
	"database/sql"

	"github.com/rutinasapp/rutinas-api/internal/domain"
)

// RoutineStore defines the interface for routine and exercise persistence.
// Every operation is scoped to an owning user; a routine or exercise that
// exists but belongs to someone else behaves exactly like one that does
// not exist.
type RoutineStore interface {
	// CreateRoutine saves a new routine aggregate (base row plus child
	// exercises) and fills in the store-assigned IDs. The caller is
	// responsible for wrapping the call in a transaction when atomicity
	// with other operations is required; the aggregate itself is written
	// through whatever DBTX the store was built with.
	CreateRoutine(ctx context.Context, routine *domain.Routine) error

	// GetByID retrieves a routine with its exercises by ID, scoped to the
	// owner. Returns ErrRoutineNotFound if absent or owned by another user.
	GetByID(ctx context.Context, id, ownerID int64) (*domain.Routine, error)

	// GetByName retrieves a routine by exact name match, scoped to the
	// owner. Returns ErrRoutineNotFound if absent.
	GetByName(ctx context.Context, name string, ownerID int64) (*domain.Routine, error)

	// ListByOwner returns a page of the owner's routines using offset/limit
	// pagination. No ordering is applied; page stability under concurrent
	// inserts is not guaranteed.
	ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error)

	// SearchByName returns the owner's routines whose name contains the
	// given term, case-insensitively.
	SearchByName(ctx context.Context, term string, ownerID int64) ([]*domain.Routine, error)

	// UpdateRoutine rewrites a routine aggregate: the base row is updated,
	// existing children are updated in place, children without an ID are
	// inserted, and persisted children missing from the aggregate are
	// deleted. Returns ErrRoutineNotFound if the base row does not exist
	// for the owner.
	UpdateRoutine(ctx context.Context, routine *domain.Routine) error

	// DeleteRoutine removes the routine and all its exercises, scoped to
	// the owner. Returns ErrRoutineNotFound if absent.
	DeleteRoutine(ctx context.Context, id, ownerID int64) error

	// GetExercise retrieves a single exercise by ID, scoped to the owner.
	// Returns ErrExerciseNotFound if absent.
	GetExercise(ctx context.Context, id, ownerID int64) (*domain.Exercise, error)

	// UpdateExercise writes the full exercise row, scoped to the owner.
	// Returns ErrExerciseNotFound if absent.
	UpdateExercise(ctx context.Context, exercise *domain.Exercise) error

	// DeleteExercise removes one exercise independently of its siblings,
	// scoped to the owner. Returns ErrExerciseNotFound if absent.
	DeleteExercise(ctx context.Context, id, ownerID int64) error

	// WithTx returns a new RoutineStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) RoutineStore
}
