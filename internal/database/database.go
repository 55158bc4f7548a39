package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/config"
	applog "github.com/EgehanKilicarslan/jobmarket/backend-go/internal/logger"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/worker"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var (
	ErrMissingDatabaseURL = errors.New("database URL is empty, check the .env file")
	ErrClientClosed       = errors.New("database client is closed")
)

// Client owns the process-wide connection pool.
// Every operation goes through Acquire so Close can wait for it.
type Client struct {
	db     *gorm.DB
	ops    *worker.Pool
	logger *slog.Logger
}

// Connect opens the PostgreSQL pool described by cfg.DatabaseURL.
// There is no retry: a failed ping is returned to the caller.
func Connect(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	logger.Info("🔌 [Database] Connecting to PostgreSQL...",
		"in_docker", cfg.IsInDocker,
		"max_open_conns", cfg.DBMaxOpenConns,
	)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: applog.NewGormLogger(cfg, logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(int(cfg.DBMaxOpenConns))
	sqlDB.SetMaxIdleConns(int(cfg.DBMaxIdleConns))
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("✅ [Database] Database connection established")

	return New(db, logger), nil
}

// New wraps an already opened handle
func New(db *gorm.DB, logger *slog.Logger) *Client {
	return &Client{
		db:     db,
		ops:    worker.NewPool(logger),
		logger: logger,
	}
}

// Acquire returns the shared handle for one operation.
// release must be called when the operation (including its transaction) ends.
func (c *Client) Acquire() (db *gorm.DB, release func(), err error) {
	release, ok := c.ops.Acquire()
	if !ok {
		return nil, nil, ErrClientClosed
	}
	return c.db, release, nil
}

// Migrate applies the embedded goose migrations
func (c *Client) Migrate() error {
	db, release, err := c.Acquire()
	if err != nil {
		return err
	}
	defer release()

	c.logger.Info("🔄 [Database] Running migrations...")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	c.logger.Info("✅ [Database] Migrations completed successfully")
	return nil
}

// Close stops handing out the pool, waits up to timeout for in-flight
// operations, then closes every connection. Operations still running after the
// timeout see their connections closed underneath them.
func (c *Client) Close(timeout time.Duration) error {
	drained := c.ops.Shutdown(timeout)

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	c.logger.Info("🔒 [Database] Connection closed", "drained", drained)
	return nil
}
