package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/config"
)

func New(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if strings.ToLower(cfg.AppEnv) == "production" {
		// JSON format
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Human-readable format
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger
}

// NewGormLogger sends gorm output through the application logger.
// SQL statements are traced only at DEBUG; otherwise gorm stays silent.
func NewGormLogger(cfg *config.Config, logger *slog.Logger) gormlogger.Interface {
	level := gormlogger.Silent
	if cfg.LogLevel <= slog.LevelDebug {
		level = gormlogger.Info
	}

	return gormlogger.New(gormWriter{logger: logger}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct {
	logger *slog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Debug("🗄️ [Gorm] " + strings.TrimSpace(fmt.Sprintf(format, args...)))
}
