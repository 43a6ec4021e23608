package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openlearn/edulearn-api/internal/config"
	"github.com/openlearn/edulearn-api/internal/handler"
	"github.com/openlearn/edulearn-api/internal/middleware"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LearnerHandler      *handler.LearnerHandler
	AssignmentHandler   *handler.AssignmentHandler
	SubmissionHandler   *handler.SubmissionHandler
	DashboardHandler    *handler.DashboardHandler
	NotificationHandler *handler.NotificationHandler
	NewsHandler         *handler.NewsHandler
	JWTMiddleware       fiber.Handler
	SubmitRateLimit     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	learnerOnly := middleware.RequireRole(models.AccountRoleLearner)

	if deps.NewsHandler != nil {
		deps.NewsHandler.Register(api.Group("/news"))
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware, learnerOnly)
		deps.AssignmentHandler.Register(assignments)

		if deps.SubmissionHandler != nil {
			deps.SubmissionHandler.RegisterAssignmentRoutes(assignments, deps.SubmitRateLimit)
		}
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware, learnerOnly)
		deps.SubmissionHandler.Register(submissions)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware, learnerOnly)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.LearnerHandler != nil {
		me := api.Group("/me", jwtMiddleware, learnerOnly)
		deps.LearnerHandler.Register(me)
	}
}
