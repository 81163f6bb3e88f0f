package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/octobees/roomshare/api/internal/search"
)

// RoomRequest is posted by someone looking for a room within a budget.
type RoomRequest struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	City      string    `json:"city"`
	Area      string    `json:"area"`
	Location  string    `json:"location"`
	Budget    float64   `json:"budget"`
	Gender    string    `json:"gender"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r RoomRequest) TextField(name string) string {
	switch name {
	case search.FieldLocation:
		return r.Location
	case search.FieldCity:
		return r.City
	case search.FieldArea:
		return r.Area
	case search.FieldName:
		return r.Name
	case search.FieldGender:
		return r.Gender
	}
	return ""
}

func (r RoomRequest) NumberField(name string) (float64, bool) {
	if name == search.FieldBudget {
		return r.Budget, true
	}
	return 0, false
}

func (r RoomRequest) SortPrice() float64 { return r.Budget }

// Room requests carry no popularity signal.
func (r RoomRequest) SortPopularity() float64 { return 0 }
