package repository_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/config"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/validation"
)

// setupPostgres connects to TEST_DATABASE_URL and applies the migrations.
// Tests using it are skipped when the variable is not set.
func setupPostgres(t *testing.T) (*database.Client, string) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL tests")
	}

	cfg := &config.Config{
		DatabaseURL:       url,
		DBMaxOpenConns:    5,
		DBMaxIdleConns:    2,
		DBConnMaxLifetime: 60,
	}
	client, err := database.Connect(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, client.Migrate())

	// Emails carry a per-test suffix so runs never collide
	suffix := "+" + uuid.NewString() + "@pg.example.com"
	t.Cleanup(func() {
		if db, release, err := client.Acquire(); err == nil {
			db.Where("email LIKE ?", "%"+suffix).Delete(&models.User{})
			release()
		}
		_ = client.Close(5 * time.Second)
	})

	return client, suffix
}

func TestPostgres_UserProjectionAndUpdate(t *testing.T) {
	client, suffix := setupPostgres(t)
	repo := repository.NewUserRepository(client, validation.New())
	ctx := context.Background()

	id, err := repo.InsertUser(ctx, repository.PreRegisterInfo{
		Name:           "Ada",
		Email:          "ada" + suffix,
		HashedPassword: "$2a$10$pg-hash",
	})
	require.NoError(t, err)

	user, err := repo.UpdateUser(ctx, id, models.UserUpdate{
		GenderID:      ptr(uint(2)),
		BirthDate:     ptr("1815-12-10"),
		Skills:        &[]string{"Go", "SQL"},
		LanguageNames: &[]string{"Turkish", "English"},
		EducationDegrees: &[]models.EducationDegreeInput{
			{Title: "BSc Mathematics", StartDate: "2010-09-01", EndDate: ptr("2014-06-30")},
		},
		WorkExperiences: &[]models.WorkExperienceInput{
			{JobTitle: "Engineer", Company: "Acme", StartDate: "2016-01-04"},
		},
		Portfolios: &[]models.PortfolioInput{
			{Title: "Engine", URL: "https://example.com/engine", Skills: []string{"math", "go"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Nil(t, user.HashedPassword)

	user, err = repo.GetUser(ctx, repository.ByID(id), []string{repository.FieldAll}, true)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "freelancer", user.RoleName)
	assert.Equal(t, "$2a$10$pg-hash", *user.HashedPassword)
	assert.Equal(t, "female", *user.GenderName)
	assert.Equal(t, "1815-12-10", *user.BirthDate)
	assert.Equal(t, []string{"Go", "SQL"}, *user.Skills)
	assert.Equal(t, []string{"Turkish", "English"}, *user.LanguageNames)
	assert.Equal(t, []string{}, *user.SocialLinks)

	require.Len(t, *user.EducationDegrees, 1)
	assert.Equal(t, "2010-09-01", (*user.EducationDegrees)[0].StartDate)
	assert.Equal(t, "2014-06-30", *(*user.EducationDegrees)[0].EndDate)

	require.Len(t, *user.WorkExperiences, 1)
	assert.Nil(t, (*user.WorkExperiences)[0].EndDate)

	require.Len(t, *user.Portfolios, 1)
	assert.Equal(t, []string{"math", "go"}, (*user.Portfolios)[0].Skills)
}

func TestPostgres_ConstraintErrors(t *testing.T) {
	client, suffix := setupPostgres(t)
	repo := repository.NewUserRepository(client, validation.New())
	ctx := context.Background()

	id, err := repo.InsertUser(ctx, repository.PreRegisterInfo{Name: "Ada", Email: "ada" + suffix, HashedPassword: "h"})
	require.NoError(t, err)

	_, err = repo.InsertUser(ctx, repository.PreRegisterInfo{Name: "Ada", Email: "ada" + suffix, HashedPassword: "h"})
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))

	_, err = repo.UpdateUser(ctx, id, models.UserUpdate{Skills: &[]string{"Go"}})
	require.NoError(t, err)

	// Unknown gender fails the whole update; skills stay as they were
	user, err := repo.UpdateUser(ctx, id, models.UserUpdate{
		GenderID: ptr(uint(999999)),
		Skills:   &[]string{"Rust"},
	})
	require.Error(t, err)
	assert.True(t, repository.IsForeignKeyViolation(err))
	assert.Nil(t, user)

	user, err = repo.GetUser(ctx, repository.ByID(id), []string{repository.FieldSkills, repository.FieldGenderName}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, *user.Skills)
	assert.Nil(t, user.GenderName)
}

func TestPostgres_JobPosts(t *testing.T) {
	client, suffix := setupPostgres(t)
	v := validation.New()
	users := repository.NewUserRepository(client, v)
	posts := repository.NewJobPostRepository(client, v)
	ctx := context.Background()

	first, err := users.InsertUser(ctx, repository.PreRegisterInfo{Name: "First", Email: "first" + suffix, HashedPassword: "h"})
	require.NoError(t, err)
	second, err := users.InsertUser(ctx, repository.PreRegisterInfo{Name: "Second", Email: "second" + suffix, HashedPassword: "h"})
	require.NoError(t, err)

	stamp, err := posts.InsertJobPost(ctx, first, repository.JobPostContent{
		Title: "Build an API", Description: "REST API in Go", Budget: 1500, Skills: []string{"go", "postgresql"},
	})
	require.NoError(t, err)

	post, err := posts.GetJobPost(ctx, repository.JobPostFilter{ID: &stamp.ID, ClientID: &first})
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, pq.StringArray{"go", "postgresql"}, post.Skills)

	post, err = posts.GetJobPost(ctx, repository.JobPostFilter{ID: &stamp.ID, ClientID: &second})
	require.NoError(t, err)
	assert.Nil(t, post)
}
