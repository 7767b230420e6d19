package domain

import "time"

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// UserStatus represents lifecycle states for a user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"
)

// Valid reports whether the status is one of the known values.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusDisabled
}

// User is the domain model owned by the user service. Accounts are never
// deleted; a disabled account keeps its record but cannot log in.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the resolved caller of a request: the pair a verified token
// decodes to. It is the only identity data the book service ever sees.
type Identity struct {
	UserID string
	Role   Role
}

// FavouriteEntry references a book owned by the book service. It carries no
// copy of book data; the id may briefly outlive the book it points at until
// the deletion cascade lands.
type FavouriteEntry struct {
	UserID    string
	BookID    string
	CreatedAt time.Time
}
