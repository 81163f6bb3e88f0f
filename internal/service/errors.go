package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/octobees/roomshare/api/internal/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrForbidden          = errors.New("not allowed to modify this resource")
	ErrInvalidID          = errors.New("invalid id")
)

// ValidationError indicates that caller supplied input is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// Actor is the authenticated caller, taken from verified token claims.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == auth.RoleAdmin
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
