// Package services contains the business rules of TechBridge. Services
// validate input, enforce lifecycle invariants, and own transaction
// boundaries; repositories below them only move data.
package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/techbridge-dev/techbridge/pkg/apperrors"
	"github.com/techbridge-dev/techbridge/pkg/auth"
	"github.com/techbridge-dev/techbridge/pkg/models"
	"github.com/techbridge-dev/techbridge/pkg/repositories"
)

// AuthService defines the interface for account operations.
type AuthService interface {
	// Register creates a STUDENT or CLIENT account. Admin accounts cannot be
	// self-registered; they are seeded from configuration.
	Register(ctx context.Context, email, password, displayName string, role models.AccountRole) (*models.User, error)

	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// SeedAdmin ensures the bootstrap admin account exists. Safe to call on
	// every startup.
	SeedAdmin(ctx context.Context, email, password, displayName string) error
}

// LoginResult carries the issued token alongside the account.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type authService struct {
	users  repositories.UserRepository
	tokens auth.TokenService
	logger *zap.Logger
}

// NewAuthService creates a new auth service with dependencies.
func NewAuthService(users repositories.UserRepository, tokens auth.TokenService, logger *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

var _ AuthService = (*authService)(nil)

func (s *authService) Register(ctx context.Context, email, password, displayName string, role models.AccountRole) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrInvalidInput)
	}
	if !models.IsValidAccountRole(role) || role == models.AccountRoleAdmin {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidRole, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Registered account",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) SeedAdmin(ctx context.Context, email, password, displayName string) error {
	if email == "" || password == "" {
		s.logger.Info("No seed admin configured, skipping")
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         models.AccountRoleAdmin,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	s.logger.Info("Created seed admin account", zap.String("email", email))
	return nil
}
