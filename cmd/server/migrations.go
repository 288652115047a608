package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/rutinasapp/rutinas-api/migrations"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info("goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf does not call os.Exit. The error is returned to main, which
// handles application exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error("goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// applyMigrations brings the database schema up to date using the
// migrations embedded in the binary.
func applyMigrations(db *sql.DB, logger *slog.Logger) error {
	migrationLogger := logger.With("component", "migrations")
	startTime := time.Now()

	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName("schema_migrations")
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	migrationLogger.Info("Migrations applied",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}
