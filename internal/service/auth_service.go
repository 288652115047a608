package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rutinasapp/rutinas-api/internal/domain"
	"github.com/rutinasapp/rutinas-api/internal/service/auth"
	"github.com/rutinasapp/rutinas-api/internal/store"
)

// Token is the credential envelope returned after a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService provides registration, login, and token resolution.
type AuthService interface {
	// Register creates a new active user with the given credentials.
	// Returns ErrUsernameTaken if the username is already registered.
	Register(ctx context.Context, username, password string, fullName *string) (*domain.User, error)

	// Authenticate verifies a username and password pair. Unknown user,
	// wrong password, and inactive account all return ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// IssueToken creates a bearer token for the given user.
	IssueToken(ctx context.Context, user *domain.User) (*Token, error)

	// Resolve validates an access token and loads the active user it was
	// issued for. Any failure returns ErrInvalidCredentials.
	Resolve(ctx context.Context, tokenString string) (*domain.User, error)
}

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	db         *sql.DB
	runInTx    txRunner
	logger     *slog.Logger
}

// Ensure AuthServiceImpl implements AuthService interface
var _ AuthService = (*AuthServiceImpl)(nil)

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	db *sql.DB,
	logger *slog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		jwtService: jwtService,
		db:         db,
		runInTx:    store.RunInTransaction,
		logger:     logger.With("component", "auth_service"),
	}
}

// Register creates a new active user with the given credentials.
// Uses a transaction to ensure atomicity of the operation.
func (s *AuthServiceImpl) Register(
	ctx context.Context,
	username, password string,
	fullName *string,
) (*domain.User, error) {
	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password during registration",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user, err := domain.NewUser(username, hashedPassword, fullName)
	if err != nil {
		s.logger.Debug("invalid user data during registration",
			"error", err,
			"username", username)
		return nil, err
	}

	err = s.runInTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register existing username",
				"username", username)
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to save user during registration",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// Authenticate verifies a username and password pair. The failure mode is
// deliberately uniform so callers learn nothing about which check failed.
func (s *AuthServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed: unknown username",
				"username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user during authentication",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Debug("authentication failed: password mismatch",
				"user_id", user.ID)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to compare password hash",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !user.IsActive {
		s.logger.Debug("authentication failed: inactive account",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("user authenticated successfully",
		"user_id", user.ID)
	return user, nil
}

// IssueToken creates a bearer token for the given user.
func (s *AuthServiceImpl) IssueToken(ctx context.Context, user *domain.User) (*Token, error) {
	accessToken, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate access token",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// Resolve validates an access token and loads the active user it was
// issued for. Invalid tokens, unknown users, and inactive accounts all
// collapse into ErrInvalidCredentials.
func (s *AuthServiceImpl) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.jwtService.ValidateToken(ctx, tokenString)
	if err != nil {
		s.logger.Debug("token resolution failed: invalid token",
			"error", err)
		return nil, ErrInvalidCredentials
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("token resolution failed: user no longer exists",
				"user_id", claims.UserID)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user during token resolution",
			"error", err,
			"user_id", claims.UserID)
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	if !user.IsActive {
		s.logger.Debug("token resolution failed: inactive account",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
