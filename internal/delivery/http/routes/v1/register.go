package v1

import (
	"time"

	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type RateLimit struct {
	Max    int
	Window time.Duration
}

type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Job           *handler.JobHandler
	Application   *handler.ApplicationHandler
	Match         *handler.MatchHandler
	AuthMw        *middleware.AuthMiddleware
	AuthRateLimit RateLimit
}

// Register mounts the v1 API. Public routes go first: everything
// registered after the protected group passes through the auth middleware.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		authGroup := r.Group("/auth", middleware.RateLimit(h.AuthRateLimit.Max, h.AuthRateLimit.Window))
		h.Auth.RegisterRoutes(authGroup)
	}
	if h.Job != nil {
		h.Job.RegisterPublicRoutes(r)
	}

	if h.AuthMw == nil {
		return
	}
	protected := r.Group("", h.AuthMw.Middleware())

	if h.User != nil {
		h.User.RegisterRoutes(protected)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(protected)
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(protected)
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(protected)
	}
}
