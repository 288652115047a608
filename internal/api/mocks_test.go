package api

import (
	"context"
	"net/http"

	"github.com/rutinasapp/rutinas-api/internal/api/shared"
	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service"
)

// stubAuthService implements service.AuthService with function fields so
// each test supplies only the behavior it needs.
type stubAuthService struct {
	registerFn     func(ctx context.Context, username, password string, fullName *string) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	issueTokenFn   func(ctx context.Context, user *domain.User) (*service.Token, error)
	resolveFn      func(ctx context.Context, tokenString string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string, fullName *string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, fullName)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubAuthService) IssueToken(ctx context.Context, user *domain.User) (*service.Token, error) {
	return s.issueTokenFn(ctx, user)
}

func (s *stubAuthService) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	return s.resolveFn(ctx, tokenString)
}

// stubRoutineService implements service.RoutineService with function fields.
type stubRoutineService struct {
	createFn         func(ctx context.Context, ownerID int64, name string, description *string, exercises []*domain.Exercise) (*domain.Routine, error)
	listFn           func(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error)
	getByIDFn        func(ctx context.Context, ownerID, id int64) (*domain.Routine, error)
	getByNameFn      func(ctx context.Context, ownerID int64, name string) (*domain.Routine, error)
	searchFn         func(ctx context.Context, ownerID int64, term string) ([]*domain.Routine, error)
	updateFn         func(ctx context.Context, ownerID, id int64, params service.UpdateRoutineParams) (*domain.Routine, error)
	deleteFn         func(ctx context.Context, ownerID, id int64) error
	addExerciseFn    func(ctx context.Context, ownerID, routineID int64, exercise *domain.Exercise) (*domain.Routine, error)
	updateExerciseFn func(ctx context.Context, ownerID, exerciseID int64, patch *domain.ExercisePatch) (*domain.Exercise, error)
	deleteExerciseFn func(ctx context.Context, ownerID, exerciseID int64) error
}

func (s *stubRoutineService) Create(ctx context.Context, ownerID int64, name string, description *string, exercises []*domain.Exercise) (*domain.Routine, error) {
	return s.createFn(ctx, ownerID, name, description, exercises)
}

func (s *stubRoutineService) List(ctx context.Context, ownerID int64, skip, limit int) ([]*domain.Routine, error) {
	return s.listFn(ctx, ownerID, skip, limit)
}

func (s *stubRoutineService) GetByID(ctx context.Context, ownerID, id int64) (*domain.Routine, error) {
	return s.getByIDFn(ctx, ownerID, id)
}

func (s *stubRoutineService) GetByName(ctx context.Context, ownerID int64, name string) (*domain.Routine, error) {
	return s.getByNameFn(ctx, ownerID, name)
}

func (s *stubRoutineService) SearchByName(ctx context.Context, ownerID int64, term string) ([]*domain.Routine, error) {
	return s.searchFn(ctx, ownerID, term)
}

func (s *stubRoutineService) Update(ctx context.Context, ownerID, id int64, params service.UpdateRoutineParams) (*domain.Routine, error) {
	return s.updateFn(ctx, ownerID, id, params)
}

func (s *stubRoutineService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.deleteFn(ctx, ownerID, id)
}

func (s *stubRoutineService) AddExercise(ctx context.Context, ownerID, routineID int64, exercise *domain.Exercise) (*domain.Routine, error) {
	return s.addExerciseFn(ctx, ownerID, routineID, exercise)
}

func (s *stubRoutineService) UpdateExercise(ctx context.Context, ownerID, exerciseID int64, patch *domain.ExercisePatch) (*domain.Exercise, error) {
	return s.updateExerciseFn(ctx, ownerID, exerciseID, patch)
}

func (s *stubRoutineService) DeleteExercise(ctx context.Context, ownerID, exerciseID int64) error {
	return s.deleteExerciseFn(ctx, ownerID, exerciseID)
}

// withTestUser injects an authenticated user the way the auth middleware
// would.
func withTestUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.WithCurrentUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
