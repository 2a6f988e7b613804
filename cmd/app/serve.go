package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsydfhmy03/SEA-Catering/internal/db"
	"github.com/rsydfhmy03/SEA-Catering/internal/email"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/scheduler"
	"github.com/rsydfhmy03/SEA-Catering/internal/server"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("starting SEA Catering API", "env", cfg.AppEnv)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close()
	logger.Info("database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations completed")

	emailService := email.New(email.Options{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	}, cfg.RedisAddr)
	defer emailService.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go emailService.Start(ctx)

	srv := server.New(database, cfg, emailService)

	sched, err := scheduler.New(cfg.ResumeSchedule, srv.Subscriptions())
	if err != nil {
		return err
	}
	sched.Start()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("received signal", "signal", sig.String())
	case runErr = <-serverErr:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	logger.Info("server stopped")
	return runErr
}
