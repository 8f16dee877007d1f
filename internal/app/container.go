package app

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies of the server process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger.Named("postgres"))
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger.Named("cache")),
	}

	if cfg.Database.RunMigrations {
		if err := RunMigrations(ctx, db, cfg.Database.MigrationsDir, logger); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	if cfg.Database.RunSeeders {
		if err := RunSeeders(ctx, db, logger); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

func RunMigrations(ctx context.Context, db database.DB, dir string, logger *zap.Logger) error {
	r := migration.Runner{Dir: dir, Logger: logger.Named("migration")}
	return r.Run(ctx, db)
}

func RunSeeders(ctx context.Context, db database.DB, logger *zap.Logger) error {
	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger.Named("seeder")}
	return r.Run(ctx, db)
}

// Handlers builds the HTTP handlers on top of the container's storage.
func (c *Container) Handlers() (*handler.HealthHandler, v1.Handlers) {
	cfg := c.Config

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	jobRepo := repository.NewPostgresJobRepository(c.DB)
	appRepo := repository.NewPostgresApplicationRepository(c.DB)
	gateway := repository.NewPostgresMatchGateway(c.DB)

	authUC := usecase.NewAuthUsecase(ucauth.NewService(userRepo), userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, c.Cache, c.Logger.Named("jobs"))
	appUC := usecase.NewApplicationUsecase(appRepo, jobRepo)
	matchUC := usecase.NewMatchingUsecase(gateway, jobRepo, usecase.MatchLimits{
		Default: cfg.Matching.DefaultLimit,
		Max:     cfg.Matching.MaxLimit,
	}, c.Logger.Named("matching"))

	health := handler.NewHealthHandler(c.DB, c.Cache)
	return health, v1.Handlers{
		Auth:        handler.NewAuthHandler(authUC),
		User:        handler.NewUserHandler(userUC),
		Job:         handler.NewJobHandler(jobUC),
		Application: handler.NewApplicationHandler(appUC),
		Match:       handler.NewMatchHandler(matchUC),
		AuthMw:      middleware.NewAuthMiddleware(jwtSvc),
		AuthRateLimit: v1.RateLimit{
			Max:    cfg.RateLimit.AuthMax,
			Window: cfg.RateLimit.AuthWindow,
		},
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
