package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rutinasapp/rutinas-api/internal/api"
	apiMiddleware "github.com/rutinasapp/rutinas-api/internal/api/middleware"
	"github.com/rutinasapp/rutinas-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	routineHandler := api.NewRoutineHandler(app.routineService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/token", authHandler.Token)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/rutinas", func(r chi.Router) {
				r.Post("/", routineHandler.Create)
				r.Get("/", routineHandler.List)
				r.Get("/buscar", routineHandler.Search)
				r.Get("/nombre/{nombre}", routineHandler.GetByName)
				r.Route("/{rutinaID}", func(r chi.Router) {
					r.Get("/", routineHandler.GetByID)
					r.Put("/", routineHandler.Update)
					r.Delete("/", routineHandler.Delete)
					r.Post("/ejercicios", routineHandler.AddExercise)
				})
			})

			r.Route("/ejercicios/{ejercicioID}", func(r chi.Router) {
				r.Put("/", routineHandler.UpdateExercise)
				r.Delete("/", routineHandler.DeleteExercise)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus exposition endpoint
	r.Handle("/metrics", metrics.Handler())

	return r
}
