package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/validation"
)

// ProfileService defines the interface for profile reads and edits
type ProfileService interface {
	GetProfile(ctx context.Context, userID uint, fields []string) (*repository.UserView, error)
	UpdateProfile(ctx context.Context, userID uint, payload []byte) (*repository.UserView, error)
}

type profileService struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
	logger    *slog.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(userRepo repository.UserRepository, v *validation.Validator, logger *slog.Logger) ProfileService {
	return &profileService{
		userRepo:  userRepo,
		validator: v,
		logger:    logger,
	}
}

// GetProfile never exposes the password hash
func (s *profileService) GetProfile(ctx context.Context, userID uint, fields []string) (*repository.UserView, error) {
	if len(fields) == 0 {
		fields = repository.DefaultFields
	}

	user, err := s.userRepo.GetUser(ctx, repository.ByID(userID), fields, false)
	if err != nil {
		s.logger.Error("❌ [ProfileService] Database error", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile decodes a raw JSON profile change and applies it atomically
func (s *profileService) UpdateProfile(ctx context.Context, userID uint, payload []byte) (*repository.UserView, error) {
	log := s.logger.With("op_id", uuid.NewString(), "user_id", userID)

	update, err := s.validator.DecodeUserUpdate(payload)
	if err != nil {
		log.Warn("⚠️ [ProfileService] Rejected profile update", "error", err)
		return nil, err
	}

	log.Info("✏️ [ProfileService] Updating profile", "collections", update.HasCollections())

	user, err := s.userRepo.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Error("❌ [ProfileService] Failed to update profile", "error", err)
		return nil, err
	}
	if user == nil {
		log.Warn("⚠️ [ProfileService] User not found")
		return nil, ErrUserNotFound
	}

	log.Info("✅ [ProfileService] Profile updated")
	return user, nil
}
