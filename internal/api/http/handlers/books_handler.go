package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/junalkadhav/library-management/internal/api/dto"
	"github.com/junalkadhav/library-management/internal/auth"
	"github.com/junalkadhav/library-management/internal/service"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// BooksHandler exposes the book catalog.
type BooksHandler struct {
	books *service.BookService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(books *service.BookService) *BooksHandler {
	return &BooksHandler{books: books}
}

// List handles GET /book/get-books. The favourites query parameter carries a
// comma-joined id list (the user service's list path); search matches title
// substrings.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	query := service.BookListQuery{
		Search: c.Query("search"),
	}
	if favourites := c.Query("favourites"); favourites != "" {
		query.IDs = splitIDs(favourites)
	}
	query.Page, _ = strconv.Atoi(c.Query("page", "1"))

	books, total, err := h.books.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBookListResponse(books, total))
}

// Get handles GET /book/get-book/:bookId.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	book, err := h.books.Get(c.UserContext(), c.Params("bookId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"book": dto.NewBookResponse(book)})
}

// Create handles POST /book/create-book.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book, err := h.books.Create(c.UserContext(), identity, bookInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "book created",
		"book":    dto.NewBookResponse(book),
	})
}

// Update handles PUT /book/update-book/:bookId.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book, err := h.books.Update(c.UserContext(), c.Params("bookId"), bookInputFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "book updated",
		"book":    dto.NewBookResponse(book),
	})
}

// Delete handles DELETE /book/delete-book/:bookId. The ack returns before
// the favourite cleanup cascade is confirmed.
func (h *BooksHandler) Delete(c *fiber.Ctx) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}
	if err := h.books.Delete(c.UserContext(), identity, c.Params("bookId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "book deleted"})
}

func bookInputFromRequest(req dto.BookRequest) service.BookInput {
	return service.BookInput{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Authors:         req.Authors,
		Genres:          req.Genres,
		AwardsWon:       req.AwardsWon,
	}
}

func splitIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
