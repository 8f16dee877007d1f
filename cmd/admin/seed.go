package main

import (
	"context"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo accounts and job postings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, cfg config.Config, db database.DB, lg *zap.Logger) error {
			if viper.GetBool("migrate") {
				if err := app.RunMigrations(ctx, db, cfg.Database.MigrationsDir, lg); err != nil {
					lg.Error("migration failed", zap.Error(err))
					return err
				}
			}
			if err := app.RunSeeders(ctx, db, lg); err != nil {
				lg.Error("seeding failed", zap.Error(err))
				return err
			}
			lg.Info("seeding finished")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Bool("migrate", false, "apply pending migrations before seeding")
	_ = viper.BindPFlag("migrate", seedCmd.Flags().Lookup("migrate"))
}
