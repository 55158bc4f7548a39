package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/app"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/config"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/logger"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting job market data layer...",
		"environment", cfg.AppEnv,
		"in_docker", cfg.IsInDocker,
	)

	// 3. Connect to Database
	client, err := database.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Run Migrations
	if err := client.Migrate(); err != nil {
		appLogger.Error("❌ Failed to run migrations", "error", err)
		_ = client.Close(0)
		os.Exit(1)
	}

	// 5. Wire repositories and services
	dataLayer := app.New(client, cfg, appLogger)
	appLogger.Info("✅ [Go] Data layer ready")

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	appLogger.Info("🛑 [Go] Shutting down...", "signal", sig.String())

	// 7. Drain in-flight operations, then close the pool
	if err := dataLayer.Close(time.Duration(cfg.ShutdownTimeout) * time.Second); err != nil {
		appLogger.Error("❌ Failed to close database", "error", err)
		os.Exit(1)
	}
}
