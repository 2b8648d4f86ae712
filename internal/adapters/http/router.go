// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-task-tracker/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. Unknown routes and
// methods answer with problem details like every other error.
func NewRouter(
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusNotFound, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusMethodNotAllowed, req.Method+" is not allowed on "+req.URL.Path)
	})

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users/{userId}", userHandler.GetUser)

		r.Get("/users/{userId}/tasks", taskHandler.ListTasks)
		r.Post("/users/{userId}/tasks", taskHandler.CreateTask)
		r.Get("/users/{userId}/tasks/{taskId}", taskHandler.GetTask)
		r.Patch("/users/{userId}/tasks/{taskId}", taskHandler.UpdateTask)

		// Lifecycle commands: start, pause, resume, complete.
		r.Post("/users/{userId}/tasks/{taskId}/{command}", taskHandler.ChangeStatus)
	})

	return r
}
