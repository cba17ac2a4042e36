package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-workflow/internal/api/http/handlers"
	"github.com/spec-kit/support-workflow/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Runs           *handlers.RunsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.IssueToken)

	runs := app.Group("/workflow/runs", cfg.AuthMiddleware.Handle)
	runs.Post("/", cfg.Runs.SubmitTicket)
	runs.Post("/demo", cfg.Runs.RunDemo)
	runs.Get("/:ticket_id", cfg.Runs.ListRuns)
}
