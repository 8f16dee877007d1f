package main

import (
	"context"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db database.DB, lg *zap.Logger) error {
			lg.Info("applying migrations", zap.String("dir", cfg.Database.MigrationsDir))
			if err := app.RunMigrations(ctx, db, cfg.Database.MigrationsDir, lg); err != nil {
				lg.Error("migration failed", zap.Error(err))
				return err
			}
			lg.Info("migrations applied")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
