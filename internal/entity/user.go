package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder: a tenant, a broker or an administrator.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profession   string    `json:"profession,omitempty"`
	Number       string    `json:"number,omitempty"`
	Location     string    `json:"location,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
