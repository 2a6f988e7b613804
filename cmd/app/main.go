package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rsydfhmy03/SEA-Catering/internal/config"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "seacatering",
	Short:         "SEA Catering meal subscription API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.InitFor(cfg.AppEnv)
	return cfg, nil
}

func main() {
	logger.Init()
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
