package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edu-records-api/internal/config"
	"github.com/noah-isme/edu-records-api/internal/handler"
	"github.com/noah-isme/edu-records-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StudentHandler       *handler.StudentHandler
	CourseHandler        *handler.CourseHandler
	EnrollmentHandler    *handler.EnrollmentHandler
	AttendanceHandler    *handler.AttendanceHandler
	ParticipationHandler *handler.ParticipationHandler
	ScoreHandler         *handler.ScoreHandler
	Database             handler.Pinger
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg, deps.Database))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students"))
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(api.Group("/courses"))
	}
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(api.Group("/enrollments"))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance"))
	}
	if deps.ParticipationHandler != nil {
		deps.ParticipationHandler.Register(api.Group("/participation"))
	}
	if deps.ScoreHandler != nil {
		deps.ScoreHandler.Register(api.Group("/scores"))
	}
}
