package main

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "jobboard-admin"

var rootCmd = &cobra.Command{
	Use:          appName,
	Short:        "Database maintenance for the job board backend",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("migrations-dir", "", "directory with V<version>__<name>.sql files")

	for _, name := range []string{"log-level", "json", "migrations-dir"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			log.Fatalf("binding %s flag: %v", name, err)
		}
	}
}

// loadConfig reads the same environment as the server and applies the
// command line overrides on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if v := viper.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if viper.GetBool("json") {
		cfg.Log.JSON = true
	}
	if v := viper.GetString("migrations-dir"); v != "" {
		cfg.Database.MigrationsDir = v
	}
	return cfg, nil
}

// withDB loads config, builds a logger and a database handle, and hands
// them to fn. The handle is closed afterwards.
func withDB(ctx context.Context, fn func(ctx context.Context, cfg config.Config, db database.DB, lg *zap.Logger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg.Named("postgres"))
	if err != nil {
		lg.Error("connecting to database", zap.Error(err))
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			lg.Warn("closing database", zap.Error(err))
		}
	}()

	return fn(ctx, cfg, db, lg)
}
