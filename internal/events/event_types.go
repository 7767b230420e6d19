package events

import (
	"time"

	"github.com/junalkadhav/library-management/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookCreated EventType = "book_created"
	EventBookDeleted EventType = "book_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Actor     domain.Identity `json:"actor"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   interface{}     `json:"payload"`
}

// BookCreatedPayload payload.
type BookCreatedPayload struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
}

// BookDeletedPayload payload. The book id here is the cascade target: every
// favourites list referencing it must eventually drop the entry.
type BookDeletedPayload struct {
	BookID string `json:"book_id"`
}
