package domain

import "time"

// Book is the domain model owned by the book service. The user service only
// ever references books by id.
type Book struct {
	ID              string
	Title           string
	ISBN            string
	PublicationYear int
	Authors         []string
	Genres          []string
	AwardsWon       []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
