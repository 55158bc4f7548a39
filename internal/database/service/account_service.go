package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/config"
	"github.com/EgehanKilicarslan/jobmarket/backend-go/internal/database/repository"
)

// AccountService defines the interface for registration and login
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (uint, error)
	Login(ctx context.Context, email, password string) (uint, error)
}

type accountService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAccountService creates a new account service instance
func NewAccountService(userRepo repository.UserRepository, cfg *config.Config, logger *slog.Logger) AccountService {
	return &accountService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *accountService) Register(ctx context.Context, name, email, password string) (uint, error) {
	log := s.logger.With("op_id", uuid.NewString())
	log.Info("📝 [AccountService] Registration attempt", "email", email)

	// Check if email already exists
	existing, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		log.Error("❌ [AccountService] Database error", "error", err)
		return 0, err
	}
	if existing != nil {
		log.Warn("⚠️ [AccountService] Email already registered", "email", email)
		return 0, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), int(s.cfg.BcryptCost))
	if err != nil {
		log.Error("❌ [AccountService] Failed to hash password", "error", err)
		return 0, err
	}

	// Create user; a concurrent registration can still win the unique index
	userID, err := s.userRepo.InsertUser(ctx, repository.PreRegisterInfo{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashedPassword),
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			log.Warn("⚠️ [AccountService] Email registered concurrently", "email", email)
			return 0, ErrEmailAlreadyExists
		}
		log.Error("❌ [AccountService] Failed to create user", "error", err)
		return 0, err
	}

	log.Info("✅ [AccountService] User registered successfully", "user_id", userID)
	return userID, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (uint, error) {
	log := s.logger.With("op_id", uuid.NewString())
	log.Info("🔐 [AccountService] Login attempt", "email", email)

	// Find user
	user, err := s.userRepo.GetUser(ctx, repository.ByEmail(email), []string{repository.FieldHashedPassword}, true)
	if err != nil {
		log.Error("❌ [AccountService] Database error", "error", err)
		return 0, err
	}
	if user == nil || user.HashedPassword == nil {
		log.Warn("⚠️ [AccountService] User not found", "email", email)
		return 0, ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(password)); err != nil {
		log.Warn("⚠️ [AccountService] Invalid password", "email", email)
		return 0, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Error("❌ [AccountService] Failed to record login", "error", err)
		return 0, err
	}

	log.Info("✅ [AccountService] User logged in successfully", "user_id", user.ID)
	return user.ID, nil
}

// Service errors
var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
