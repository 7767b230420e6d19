package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/junalkadhav/library-management/internal/domain"
	"github.com/junalkadhav/library-management/internal/events"
	"github.com/junalkadhav/library-management/internal/repository"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

const defaultBookPageSize = 10

// BookService coordinates catalog workflows.
type BookService struct {
	books      repository.BookRepository
	dispatcher events.Dispatcher
	pageSize   int
}

// NewBookService constructs the service.
func NewBookService(books repository.BookRepository, dispatcher events.Dispatcher) *BookService {
	return &BookService{books: books, dispatcher: dispatcher, pageSize: defaultBookPageSize}
}

// BookInput describes creation/update payloads.
type BookInput struct {
	Title           string
	ISBN            string
	PublicationYear int
	Authors         []string
	Genres          []string
	AwardsWon       []string
}

// BookListQuery narrows a listing. IDs (the favourites fetch path) takes
// precedence over Search.
type BookListQuery struct {
	IDs    []string
	Search string
	Page   int
}

func validateBookInput(input BookInput) error {
	details := map[string]any{}
	if input.Title == "" {
		details["title"] = "required"
	}
	if input.ISBN == "" {
		details["isbn"] = "required"
	}
	if input.PublicationYear <= 0 {
		details["publicationYear"] = "must be a positive year"
	}
	if len(input.Authors) == 0 {
		details["authors"] = "at least one author required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid book payload", details)
	}
	return nil
}

// Create adds a book to the catalog.
func (s *BookService) Create(ctx context.Context, actor domain.Identity, input BookInput) (*domain.Book, error) {
	if err := validateBookInput(input); err != nil {
		return nil, err
	}

	book := &domain.Book{
		Title:           input.Title,
		ISBN:            input.ISBN,
		PublicationYear: input.PublicationYear,
		Authors:         input.Authors,
		Genres:          input.Genres,
		AwardsWon:       input.AwardsWon,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBookCreated,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   events.BookCreatedPayload{BookID: book.ID, Title: book.Title},
	})
	return book, nil
}

// Get fetches one book by id.
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidBookReference(id)
	}
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": id})
		}
		return nil, err
	}
	return book, nil
}

// List returns a filtered page of books plus the total count.
func (s *BookService) List(ctx context.Context, query BookListQuery) ([]domain.Book, int, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	filter := repository.BookFilter{
		Search: query.Search,
		Limit:  s.pageSize,
		Offset: (page - 1) * s.pageSize,
	}
	for _, id := range query.IDs {
		if _, err := uuid.Parse(id); err != nil {
			// A stale or malformed reference from a caller's favourites is
			// skipped, not a hard failure.
			continue
		}
		filter.IDs = append(filter.IDs, id)
	}
	if len(query.IDs) > 0 && len(filter.IDs) == 0 {
		return []domain.Book{}, 0, nil
	}

	return s.books.List(ctx, filter)
}

// Update replaces a book's fields.
func (s *BookService) Update(ctx context.Context, id string, input BookInput) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewInvalidBookReference(id)
	}
	if err := validateBookInput(input); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:              id,
		Title:           input.Title,
		ISBN:            input.ISBN,
		PublicationYear: input.PublicationYear,
		Authors:         input.Authors,
		Genres:          input.Genres,
		AwardsWon:       input.AwardsWon,
	}
	if err := s.books.Update(ctx, book); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": id})
		}
		return nil, err
	}
	return s.books.GetByID(ctx, id)
}

// Delete removes a book and publishes the deletion event that feeds the
// favourite-cleanup cascade. The response does not wait for the cascade to
// land; stale favourite references converge once delivery succeeds.
func (s *BookService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewInvalidBookReference(id)
	}
	existed, err := s.books.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.NewNotFound("book", map[string]any{"bookId": id})
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBookDeleted,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   events.BookDeletedPayload{BookID: id},
	})
	return nil
}
