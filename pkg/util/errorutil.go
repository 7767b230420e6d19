package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusUnprocessableEntity, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewAlreadyFavourite signals a duplicate favourite entry.
func NewAlreadyFavourite(bookID string) error {
	return NewDomainError("ALREADY_FAVOURITE", "book is already a favourite", http.StatusBadRequest,
		map[string]any{"bookId": bookID})
}

// NewNotFavourite signals removal of an entry that is not present.
func NewNotFavourite(bookID string) error {
	return NewDomainError("NOT_FAVOURITE", "book is not a favourite", http.StatusNotFound,
		map[string]any{"bookId": bookID})
}

// NewInvalidBookReference signals a book id that does not have the expected
// identifier shape.
func NewInvalidBookReference(bookID string) error {
	return NewDomainError("NOT_FOUND", "invalid book reference", http.StatusNotFound,
		map[string]any{"bookId": bookID})
}

// NewUpstreamUnreachable wraps a transport-level failure reaching another
// service: connection refused, timeout, DNS. Surfaced as a 502 so clients can
// tell "the service is down" apart from a genuine remote 404/403.
func NewUpstreamUnreachable(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_UNREACHABLE",
		Message:    "upstream service unavailable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewUpstreamRejected mirrors an error status returned by another service.
func NewUpstreamRejected(status int, message string) error {
	return NewDomainError("UPSTREAM_REJECTED", message, status, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. This is the single
// terminal mapping point: every request error passes through here before the
// response envelope is written.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
