package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/octobees/roomshare/api/internal/search"
)

// OwnerSummary is the public slice of the listing owner's profile.
type OwnerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Listing is a property offered for rent.
type Listing struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      uuid.UUID     `json:"owner_id"`
	Owner        *OwnerSummary `json:"owner,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Address      string        `json:"address"`
	City         string        `json:"city"`
	District     string        `json:"district"`
	Zipcode      string        `json:"zipcode"`
	Location     string        `json:"location"`
	Locality     string        `json:"locality"`
	Rent         float64       `json:"rent"`
	PropertyType string        `json:"property_type"`
	Bedrooms     int           `json:"bedrooms"`
	BHKType      string        `json:"bhk_type,omitempty"`
	AreaSqft     *float64      `json:"area_sqft,omitempty"`
	Deposit      *float64      `json:"deposit,omitempty"`
	Amenities    []string      `json:"amenities"`
	AllowBroker  bool          `json:"allow_broker"`
	ImageURLs    []string      `json:"image_urls"`
	Rating       *float64      `json:"rating,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TextField implements search.Document.
func (l Listing) TextField(name string) string {
	switch name {
	case search.FieldCity:
		return l.City
	case search.FieldDistrict:
		return l.District
	case search.FieldLocality:
		return l.Locality
	case search.FieldPropertyType:
		return l.PropertyType
	}
	return ""
}

// NumberField implements search.Document.
func (l Listing) NumberField(name string) (float64, bool) {
	if name == search.FieldRent {
		return l.Rent, true
	}
	return 0, false
}

func (l Listing) SortPrice() float64 { return l.Rent }

// SortPopularity reports the rating, or zero for unrated listings.
func (l Listing) SortPopularity() float64 {
	if l.Rating == nil {
		return 0
	}
	return *l.Rating
}
