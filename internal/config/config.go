package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppEnv             string
	LogLevel           slog.Level
	DatabaseURL        string
	IsInDocker         bool
	DockerDatabaseHost string
	DBMaxOpenConns     int64
	DBMaxIdleConns     int64
	DBConnMaxLifetime  int64 // Seconds
	ShutdownTimeout    int64 // Seconds to wait for in-flight operations
	BcryptCost         int64
}

// LoadConfig reads .env (when present) and the process environment.
// The database URL is rewritten for the container network before it is returned.
func LoadConfig() *Config {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),                        // Default development
		LogLevel:           getLogLevel(),                                           // Default INFO
		DatabaseURL:        getEnv("DATABASE_URL", ""),                              // No default, required
		IsInDocker:         getEnvAsBool("IS_IN_DOCKER", false),                     // Default false
		DockerDatabaseHost: getEnv("DOCKER_DATABASE_HOST", "postgres"),              // Default compose service name
		DBMaxOpenConns:     getEnvAsInt64("DB_MAX_OPEN_CONNS", 25),                  // Default 25
		DBMaxIdleConns:     getEnvAsInt64("DB_MAX_IDLE_CONNS", 5),                   // Default 5
		DBConnMaxLifetime:  getEnvAsInt64("DB_CONN_MAX_LIFETIME", 300),              // Default 5 minutes
		ShutdownTimeout:    getEnvAsInt64("SHUTDOWN_TIMEOUT", 15),                   // Default 15 seconds
		BcryptCost:         getEnvAsInt64("BCRYPT_COST", int64(bcrypt.DefaultCost)), // Default 10
	}

	if cfg.IsInDocker && cfg.DatabaseURL != "" {
		cfg.DatabaseURL = DockerizeDatabaseURL(cfg.DatabaseURL, cfg.DockerDatabaseHost)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
