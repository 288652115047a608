package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service/auth"
	"github.com/rutinasapp/rutinas-api/internal/store"
)

// passthroughTx runs the transaction function directly, without a real
// database. The fakes ignore the tx handle entirely.
func passthroughTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	createErr error
	getErr    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return f
}

// fakeRoutineStore is an in-memory RoutineStore. Routines are stored as
// deep copies so callers cannot mutate stored state through returned
// aggregates.
type fakeRoutineStore struct {
	mu             sync.Mutex
	nextRoutineID  int64
	nextExerciseID int64
	routines       map[int64]*domain.Routine

	failWith error
}

func newFakeRoutineStore() *fakeRoutineStore {
	return &fakeRoutineStore{routines: make(map[int64]*domain.Routine)}
}

func copyRoutine(r *domain.Routine) *domain.Routine {
	copied := *r
	copied.Exercises = make([]*domain.Exercise, len(r.Exercises))
	for i, e := range r.Exercises {
		exercise := *e
		copied.Exercises[i] = &exercise
	}
	return &copied
}

func (f *fakeRoutineStore) CreateRoutine(ctx context.Context, routine *domain.Routine) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.routines {
		if existing.OwnerID == routine.OwnerID && existing.Name == routine.Name {
			return store.ErrRoutineNameExists
		}
	}
	f.nextRoutineID++
	routine.ID = f.nextRoutineID
	for _, exercise := range routine.Exercises {
		f.nextExerciseID++
		exercise.ID = f.nextExerciseID
		exercise.RoutineID = routine.ID
	}
	f.routines[routine.ID] = copyRoutine(routine)
	return nil
}

func (f *fakeRoutineStore) GetByID(ctx context.Context, id, ownerID int64) (*domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	routine, ok := f.routines[id]
	if !ok || routine.OwnerID != ownerID {
		return nil, store.ErrRoutineNotFound
	}
	return copyRoutine(routine), nil
}

func (f *fakeRoutineStore) GetByName(ctx context.Context, name string, ownerID int64) (*domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, routine := range f.routines {
		if routine.OwnerID == ownerID && routine.Name == name {
			return copyRoutine(routine), nil
		}
	}
	return nil, store.ErrRoutineNotFound
}

func (f *fakeRoutineStore) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	owned := []*domain.Routine{}
	for id := int64(1); id <= f.nextRoutineID; id++ {
		routine, ok := f.routines[id]
		if ok && routine.OwnerID == ownerID {
			owned = append(owned, copyRoutine(routine))
		}
	}
	if skip >= len(owned) {
		return []*domain.Routine{}, nil
	}
	owned = owned[skip:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (f *fakeRoutineStore) SearchByName(ctx context.Context, term string, ownerID int64) ([]*domain.Routine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []*domain.Routine{}
	for id := int64(1); id <= f.nextRoutineID; id++ {
		routine, ok := f.routines[id]
		if !ok || routine.OwnerID != ownerID {
			continue
		}
		if strings.Contains(strings.ToLower(routine.Name), strings.ToLower(term)) {
			matched = append(matched, copyRoutine(routine))
		}
	}
	return matched, nil
}

func (f *fakeRoutineStore) UpdateRoutine(ctx context.Context, routine *domain.Routine) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	stored, ok := f.routines[routine.ID]
	if !ok || stored.OwnerID != routine.OwnerID {
		return store.ErrRoutineNotFound
	}
	for _, existing := range f.routines {
		if existing.ID != routine.ID && existing.OwnerID == routine.OwnerID && existing.Name == routine.Name {
			return store.ErrRoutineNameExists
		}
	}
	for _, exercise := range routine.Exercises {
		exercise.RoutineID = routine.ID
		if exercise.ID == 0 {
			f.nextExerciseID++
			exercise.ID = f.nextExerciseID
		}
	}
	f.routines[routine.ID] = copyRoutine(routine)
	return nil
}

func (f *fakeRoutineStore) DeleteRoutine(ctx context.Context, id, ownerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	routine, ok := f.routines[id]
	if !ok || routine.OwnerID != ownerID {
		return store.ErrRoutineNotFound
	}
	delete(f.routines, id)
	return nil
}

func (f *fakeRoutineStore) GetExercise(ctx context.Context, id, ownerID int64) (*domain.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, routine := range f.routines {
		if routine.OwnerID != ownerID {
			continue
		}
		for _, exercise := range routine.Exercises {
			if exercise.ID == id {
				copied := *exercise
				return &copied, nil
			}
		}
	}
	return nil, store.ErrExerciseNotFound
}

func (f *fakeRoutineStore) UpdateExercise(ctx context.Context, exercise *domain.Exercise) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, routine := range f.routines {
		if routine.OwnerID != exercise.OwnerID {
			continue
		}
		for i, stored := range routine.Exercises {
			if stored.ID == exercise.ID {
				copied := *exercise
				routine.Exercises[i] = &copied
				return nil
			}
		}
	}
	return store.ErrExerciseNotFound
}

func (f *fakeRoutineStore) DeleteExercise(ctx context.Context, id, ownerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, routine := range f.routines {
		if routine.OwnerID != ownerID {
			continue
		}
		for i, stored := range routine.Exercises {
			if stored.ID == id {
				routine.Exercises = append(routine.Exercises[:i], routine.Exercises[i+1:]...)
				return nil
			}
		}
	}
	return store.ErrExerciseNotFound
}

func (f *fakeRoutineStore) WithTx(tx *sql.Tx) store.RoutineStore {
	return f
}

// fakePasswordHasher hashes by prefixing, which keeps auth tests readable.
type fakePasswordHasher struct {
	hashErr error
}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakePasswordHasher) Compare(encodedHash, password string) error {
	if encodedHash != "hashed:"+password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

// fakeJWTService issues tokens of the form "token-for-<id>".
type fakeJWTService struct {
	generateErr error
	validateErr error
}

func (f *fakeJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return fmt.Sprintf("token-for-%d", userID), nil
}

func (f *fakeJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	raw, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, Subject: raw}, nil
}
