package dto

import (
	"time"

	"github.com/junalkadhav/library-management/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Role   domain.Role       `json:"role"`
	Status domain.UserStatus `json:"status"`
}

// AuthorizeResponse is returned to peer services resolving a credential.
type AuthorizeResponse struct {
	Success bool        `json:"success"`
	UserID  string      `json:"userId"`
	Role    domain.Role `json:"role"`
}

// UpdateRoleRequest payload for the privileged role change.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

// UpdateStatusRequest payload for the privileged status change.
type UpdateStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}
}
