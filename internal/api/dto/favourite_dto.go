package dto

import "github.com/junalkadhav/library-management/internal/upstream"

// FavouriteRequest identifies a book reference to add or remove.
type FavouriteRequest struct {
	BookID string `json:"bookId"`
}

// FavouriteListResponse is the paginated favourites result. Books carry the
// book service's wire shape unchanged.
type FavouriteListResponse struct {
	Total int             `json:"total"`
	Books []upstream.Book `json:"books"`
}

// CascadeRemoveRequest is the internal cleanup payload sent by the book
// service after a deletion.
type CascadeRemoveRequest struct {
	BookID string `json:"bookId"`
}
