package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/junalkadhav/library-management/internal/domain"
	"github.com/junalkadhav/library-management/internal/repository"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// UserService covers privileged identity mutation. Accounts are never
// deleted; role and status changes are the only identity writes after
// registration, and routes to them sit behind the SUPER_ADMIN policy entry.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ChangeRole assigns a new role to the user.
func (s *UserService) ChangeRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.NewNotFound("user", map[string]any{"userId": userID})
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"userId": userID})
		}
		return err
	}
	return nil
}

// ChangeStatus enables or disables the account. Disabling takes effect at the
// next login; already-issued tokens stay valid until expiry because token
// verification is a pure claims decode.
func (s *UserService) ChangeStatus(ctx context.Context, userID string, status domain.UserStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
	}
	if _, err := uuid.Parse(userID); err != nil {
		return apperrors.NewNotFound("user", map[string]any{"userId": userID})
	}
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"userId": userID})
		}
		return err
	}
	return nil
}
