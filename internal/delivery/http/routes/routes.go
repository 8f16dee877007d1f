package routes

import (
	"jobboard/internal/delivery/http/handler"
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Register mounts the health probe at the root and the versioned API
// under /api/v1.
func Register(app *fiber.App, health *handler.HealthHandler, api v1.Handlers) {
	if app == nil {
		return
	}

	if health != nil {
		health.RegisterRoutes(app)
	}
	v1.Register(app.Group("/api/v1"), api)
}
