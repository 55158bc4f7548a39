package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/models"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
)

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (*uint, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uint), args.Error(1)
}

func (m *MockUserRepository) InsertUser(ctx context.Context, info repository.PreRegisterInfo) (uint, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(ctx context.Context, lookup repository.UserLookup, fields []string, withPassword bool) (*repository.UserView, error) {
	args := m.Called(ctx, lookup, fields, withPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserView), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*repository.UserView, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserView), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T {
	return &v
}
