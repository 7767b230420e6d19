package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/junalkadhav/library-management/internal/auth"
	"github.com/junalkadhav/library-management/internal/config"
	"github.com/junalkadhav/library-management/internal/domain"
	"github.com/junalkadhav/library-management/internal/repository"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// AuthService coordinates registration and login flows. It is the identity
// authority: the only component that ever touches the token secret.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput describes a new account request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new account. Role defaults to USER, status to ACTIVE.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	details := map[string]any{}
	if input.Name == "" {
		details["name"] = "required"
	}
	if input.Email == "" {
		details["email"] = "required"
	}
	if len(input.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if !input.Role.Valid() {
		details["role"] = "unknown role"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration payload", details)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("invalid registration payload",
			map[string]any{"email": "already registered"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the lookup above and hit
		// the unique index instead; report it the same way.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError("invalid registration payload",
				map[string]any{"email": "already registered"})
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and issues a token. Unknown email and wrong
// password fail identically so the response never discloses which was wrong.
// A disabled account with correct credentials is a 403, never a 200.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status == domain.UserStatusDisabled {
		return nil, "", time.Time{}, apperrors.NewForbidden("account disabled")
	}

	token, exp, err := s.tokenMgr.Issue(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for the local resolver.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
