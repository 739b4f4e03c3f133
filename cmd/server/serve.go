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

	"github.com/yusufkecer/fitness-tracker-backend/internal/handler"
	"github.com/yusufkecer/fitness-tracker-backend/internal/logging"
	"github.com/yusufkecer/fitness-tracker-backend/internal/middleware"
	"github.com/yusufkecer/fitness-tracker-backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET is not set, login is disabled and every request runs as the demo user")
	}

	store, err := cfg.OpenStorage(logging.For(logger, "storage"))
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	demoUserID := cfg.DemoUserID
	if cfg.SeedDemo {
		user, err := service.NewSeeder(store, logging.For(logger, "seed")).Seed(ctx)
		if err != nil {
			return err
		}
		demoUserID = user.ID
	}

	router := handler.NewRouter(handler.Deps{
		Store:          store,
		Logger:         logging.For(logger, "http"),
		Metrics:        middleware.NewMetrics(),
		JWTSecret:      cfg.JWTSecret,
		AuthRequired:   cfg.AuthRequired,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		DemoUserID:     demoUserID,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("backend", cfg.Backend).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
