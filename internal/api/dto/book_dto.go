package dto

import "github.com/junalkadhav/library-management/internal/domain"

// BookRequest payload for creating or updating a book.
type BookRequest struct {
	Title           string   `json:"title"`
	ISBN            string   `json:"isbn"`
	PublicationYear int      `json:"publicationYear"`
	Authors         []string `json:"authors"`
	Genres          []string `json:"genres"`
	AwardsWon       []string `json:"awardsWon"`
}

// BookResponse is the wire shape of a book.
type BookResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	ISBN            string   `json:"isbn"`
	PublicationYear int      `json:"publicationYear"`
	Authors         []string `json:"authors"`
	Genres          []string `json:"genres"`
	AwardsWon       []string `json:"awardsWon"`
}

// BookListResponse is a paginated book result set.
type BookListResponse struct {
	Total int            `json:"total"`
	Books []BookResponse `json:"books"`
}

// NewBookResponse maps a domain book.
func NewBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		ISBN:            book.ISBN,
		PublicationYear: book.PublicationYear,
		Authors:         book.Authors,
		Genres:          book.Genres,
		AwardsWon:       book.AwardsWon,
	}
}

// NewBookListResponse maps a page of domain books.
func NewBookListResponse(books []domain.Book, total int) BookListResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, NewBookResponse(&books[i]))
	}
	return BookListResponse{Total: total, Books: out}
}
