package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/junalkadhav/library-management/internal/api/dto"
	"github.com/junalkadhav/library-management/internal/auth"
	"github.com/junalkadhav/library-management/internal/service"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// FavouritesHandler exposes the favourites list and the internal cascade
// endpoint.
type FavouritesHandler struct {
	favourites *service.FavouriteService
}

// NewFavouritesHandler constructs handler.
func NewFavouritesHandler(favourites *service.FavouriteService) *FavouritesHandler {
	return &FavouritesHandler{favourites: favourites}
}

// List handles GET /user/favourite-books.
func (h *FavouritesHandler) List(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	list, err := h.favourites.List(c.UserContext(), identity.UserID, c.Get(fiber.HeaderAuthorization), page)
	if err != nil {
		return err
	}
	return c.JSON(dto.FavouriteListResponse{Total: list.Total, Books: list.Books})
}

// Add handles POST /user/add-favourite-book.
func (h *FavouritesHandler) Add(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	var req dto.FavouriteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.favourites.Add(c.UserContext(), identity.UserID, req.BookID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "book added to favourites"})
}

// Remove handles POST /user/remove-favourite-book.
func (h *FavouritesHandler) Remove(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	var req dto.FavouriteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.favourites.Remove(c.UserContext(), identity.UserID, req.BookID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "book removed from favourites"})
}

// CascadeRemove handles POST /user/internal/cascade-remove. Reached only from
// the book service over the internal network; it is idempotent so duplicate
// deliveries from the retry loop always ack.
func (h *FavouritesHandler) CascadeRemove(c *fiber.Ctx) error {
	var req dto.CascadeRemoveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.favourites.CascadeRemove(c.UserContext(), req.BookID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "cascade applied"})
}
