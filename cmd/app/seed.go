package main

import (
	"github.com/spf13/cobra"

	"github.com/rsydfhmy03/SEA-Catering/internal/db"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/mealplan"
	"github.com/rsydfhmy03/SEA-Catering/internal/seed"
	"github.com/rsydfhmy03/SEA-Catering/internal/user"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the meal plan catalog and admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := seedFile
		if path == "" {
			path = cfg.SeedFile
		}

		f, err := seed.Load(path)
		if err != nil {
			return err
		}

		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
			return err
		}

		seeder := seed.NewSeeder(mealplan.NewRepository(database), user.NewRepository(database))
		res, err := seeder.Run(cmd.Context(), f)
		if err != nil {
			return err
		}

		logger.Info("seed completed",
			"plans_created", res.PlansCreated,
			"plans_skipped", res.PlansSkipped,
			"admin_created", res.AdminCreated,
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed file (defaults to SEED_FILE)")
}
