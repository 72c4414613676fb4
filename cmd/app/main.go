package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/catalog"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/config"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/db"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/email"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/server"
)

// @title CrossfitTracker API
// @version 1.0
// @description Gym membership, subscription and billing API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting CrossfitTracker application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database ready, migrations applied")

	// A tier without any price is a data error, caught here rather than at
	// request time.
	tiers, err := catalog.NewRepository(database).ListTiers(context.Background(), true)
	if err != nil {
		logger.Fatalf("Failed to load pricing catalog: %v", err)
	}
	if err := catalog.ValidateTiers(tiers); err != nil {
		logger.Fatalf("Pricing catalog is invalid: %v", err)
	}
	logger.Infof("Pricing catalog loaded: %d tiers", len(tiers))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()
	go emailService.Start(ctx)

	srv := server.New(database, cfg, emailService)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Server listening on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		logger.Errorf("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
