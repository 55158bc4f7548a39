package app

import (
	"log/slog"
	"time"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/config"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/service"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/validation"
)

// App is the data layer handed to the transport that embeds it
type App struct {
	Accounts service.AccountService
	Profiles service.ProfileService
	JobPosts repository.JobPostRepository

	client *database.Client
	logger *slog.Logger
}

// New wires repositories and services on top of an open client
func New(client *database.Client, cfg *config.Config, logger *slog.Logger) *App {
	v := validation.New()
	userRepo := repository.NewUserRepository(client, v)

	return &App{
		Accounts: service.NewAccountService(userRepo, cfg, logger),
		Profiles: service.NewProfileService(userRepo, v, logger),
		JobPosts: repository.NewJobPostRepository(client, v),
		client:   client,
		logger:   logger,
	}
}

// Close drains in-flight operations for up to timeout, then closes the pool
func (a *App) Close(timeout time.Duration) error {
	a.logger.Info("🛑 [App] Shutting down data layer...", "timeout", timeout)
	return a.client.Close(timeout)
}
