package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rutinasapp/rutinas-api/internal/config"
	"github.com/rutinasapp/rutinas-api/internal/platform/postgres"
	"github.com/rutinasapp/rutinas-api/internal/service"
	"github.com/rutinasapp/rutinas-api/internal/service/auth"
	"github.com/rutinasapp/rutinas-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	routineStore store.RoutineStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	authService    service.AuthService
	routineService service.RoutineService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewArgon2idHasher()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.routineStore = postgres.NewPostgresRoutineStore(db, logger)

	app.authService = service.NewAuthService(
		app.userStore,
		app.passwordHasher,
		app.jwtService,
		db,
		logger,
	)
	app.routineService = service.NewRoutineService(app.routineStore, db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
