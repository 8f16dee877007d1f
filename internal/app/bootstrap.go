package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// bodyLimit caps request bodies. Nothing the API accepts comes near it.
const bodyLimit = 1 << 20

type App struct {
	Fiber *fiber.App
}

// New builds the Fiber app around already constructed handlers. Access
// logging runs outermost so it sees the status the error middleware wrote.
func New(cfg config.Config, logger *zap.Logger, health *handler.HealthHandler, api v1.Handlers) *App {
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	for _, mw := range []fiber.Handler{
		middleware.NewAccessLogMiddleware(logger).Middleware(),
		middleware.NewErrorMiddleware(logger).Middleware(),
	} {
		f.Use(mw)
	}
	routes.Register(f, health, api)

	return &App{Fiber: f}
}

// Bootstrap wires storage and handlers from cfg. The returned func
// releases the database pool and the Redis client.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	health, api := c.Handlers()
	return New(cfg, logger, health, api), c.Close, nil
}

// ListenAddr turns HTTP_PORT ("8080" or ":8080") into a listen address.
func ListenAddr(port string) (string, error) {
	p := strings.TrimPrefix(strings.TrimSpace(port), ":")
	n, err := strconv.Atoi(p)
	if err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("invalid HTTP port %q", port)
	}
	return ":" + p, nil
}
