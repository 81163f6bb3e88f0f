package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlan is a paid tier offered to brokers and owners.
type SubscriptionPlan struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PriceMonthly float64   `json:"price_monthly"`
	Features     []string  `json:"features"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
