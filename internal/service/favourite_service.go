package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junalkadhav/library-management/internal/repository"
	"github.com/junalkadhav/library-management/internal/upstream"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// bookFetcher retrieves books from the book service on behalf of a caller.
// Satisfied by upstream.BookClient.
type bookFetcher interface {
	FetchByIDs(ctx context.Context, authorization string, ids []string, page int) (upstream.BookList, error)
}

// FavouriteService owns the per-user list of referenced book ids. The ids
// point into the book service's entity space; an entry may briefly reference
// a deleted book until the cascade lands, and listing tolerates that.
type FavouriteService struct {
	favourites repository.FavouriteRepository
	books      bookFetcher
	logger     *zap.Logger
}

// NewFavouriteService builds the service.
func NewFavouriteService(favourites repository.FavouriteRepository, books bookFetcher, logger *zap.Logger) *FavouriteService {
	return &FavouriteService{favourites: favourites, books: books, logger: logger}
}

// List returns the caller's favourite books. The id set is read locally;
// book data comes from one filtered, paginated fetch to the book service,
// forwarding the caller's own credential rather than minting a new one. An
// empty id set short-circuits without a network call.
func (s *FavouriteService) List(ctx context.Context, userID, authorization string, page int) (upstream.BookList, error) {
	ids, err := s.favourites.ListBookIDs(ctx, userID)
	if err != nil {
		return upstream.BookList{}, err
	}
	if len(ids) == 0 {
		return upstream.BookList{Total: 0, Books: []upstream.Book{}}, nil
	}
	return s.books.FetchByIDs(ctx, authorization, ids, page)
}

// Add appends a book reference. The id's shape is checked here, but not the
// book's remote existence; a dangling reference is caught lazily at list
// time. Duplicate detection is atomic in the store.
func (s *FavouriteService) Add(ctx context.Context, userID, bookID string) error {
	if _, err := uuid.Parse(bookID); err != nil {
		return apperrors.NewInvalidBookReference(bookID)
	}
	added, err := s.favourites.Add(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if !added {
		return apperrors.NewAlreadyFavourite(bookID)
	}
	return nil
}

// Remove deletes a book reference by id. It succeeds whether or not the book
// still exists remotely; only absence from the caller's list is an error.
func (s *FavouriteService) Remove(ctx context.Context, userID, bookID string) error {
	removed, err := s.favourites.Remove(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFavourite(bookID)
	}
	return nil
}

// CascadeRemove drops the book id from every user's favourites. Invoked by
// the book service's deletion path, possibly more than once per deletion:
// removing an absent id is a no-op, never an error.
func (s *FavouriteService) CascadeRemove(ctx context.Context, bookID string) error {
	removed, err := s.favourites.RemoveForAllUsers(ctx, bookID)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("cascade removed favourite entries",
			zap.String("book_id", bookID),
			zap.Int64("entries", removed))
	}
	return nil
}
