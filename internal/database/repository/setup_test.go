package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/validation"
)

// job_posts.skills is text[] on PostgreSQL; SQLite stores the array literal as text
const createJobPostsSQLite = `CREATE TABLE job_posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	budget INTEGER NOT NULL DEFAULT 0,
	skills TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME,
	updated_at DATETIME
)`

var errInjected = errors.New("injected failure")

// setupTestDB creates a new in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every connection of :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// Run migrations
	err = db.AutoMigrate(
		&models.Role{},
		&models.Gender{},
		&models.User{},
		&models.UserSkill{},
		&models.UserLanguage{},
		&models.UserSocialLink{},
		&models.UserEducationDegree{},
		&models.UserWorkExperience{},
		&models.UserPortfolio{},
	)
	require.NoError(t, err)
	require.NoError(t, db.Exec(createJobPostsSQLite).Error)

	// Seed lookups
	require.NoError(t, db.Create(&[]models.Role{
		{ID: 1, RoleName: "freelancer"},
		{ID: 2, RoleName: "client"},
		{ID: 3, RoleName: "admin"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Gender{
		{ID: 1, GenderName: "male"},
		{ID: 2, GenderName: "female"},
		{ID: 3, GenderName: "other"},
	}).Error)

	return db
}

func newClient(db *gorm.DB) *database.Client {
	return database.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newUserRepository(t *testing.T) (repository.UserRepository, *gorm.DB) {
	db := setupTestDB(t)
	return repository.NewUserRepository(newClient(db), validation.New()), db
}

// failInsertsInto makes every insert into table fail
func failInsertsInto(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errInjected)
		}
	})
	require.NoError(t, err)
}

func insertUser(t *testing.T, repo repository.UserRepository, name, email string) uint {
	t.Helper()

	id, err := repo.InsertUser(context.Background(), repository.PreRegisterInfo{
		Name:           name,
		Email:          email,
		HashedPassword: "$2a$10$hash-of-" + name,
	})
	require.NoError(t, err)
	require.NotZero(t, id)
	return id
}

func ptr[T any](v T) *T {
	return &v
}
