package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/junalkadhav/library-management/internal/api/dto"
	"github.com/junalkadhav/library-management/internal/auth"
	"github.com/junalkadhav/library-management/internal/service"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// UsersHandler exposes registration, login, identity resolution and the
// privileged account mutations.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /user/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Login handles POST /user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	_, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Token: token, ExpiresAt: exp})
}

// Authorize handles GET /user/authorize: the verification endpoint peer
// services delegate to. The middleware has already resolved the credential;
// this just echoes the identity back.
func (h *UsersHandler) Authorize(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthorizeResponse{Success: true, UserID: identity.UserID, Role: identity.Role})
}

// UpdateRole handles PATCH /user/:userId/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ChangeRole(c.UserContext(), c.Params("userId"), req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "role updated"})
}

// UpdateStatus handles PATCH /user/:userId/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ChangeStatus(c.UserContext(), c.Params("userId"), req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}
