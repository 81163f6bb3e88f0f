package dto

import "io"

// CreateListingRequest carries the fields of a new listing. Images arrive as
// separate multipart parts.
type CreateListingRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=5000"`
	Address      string   `json:"address" validate:"required,max=300"`
	City         string   `json:"city" validate:"required,max=100"`
	District     string   `json:"district" validate:"required,max=100"`
	Zipcode      string   `json:"zipcode" validate:"required,max=12"`
	Location     string   `json:"location" validate:"required,max=300"`
	Locality     string   `json:"locality" validate:"max=100"`
	Rent         float64  `json:"rent" validate:"gt=0"`
	PropertyType string   `json:"property_type" validate:"required"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0,lte=50"`
	BHKType      string   `json:"bhk_type" validate:"max=20"`
	AreaSqft     *float64 `json:"area_sqft" validate:"omitempty,gt=0"`
	Deposit      *float64 `json:"deposit" validate:"omitempty,gte=0"`
	Amenities    []string `json:"amenities" validate:"dive,max=60"`
	AllowBroker  *bool    `json:"allow_broker"`
}

// UpdateListingRequest carries a partial listing update. Nil fields are left untouched.
type UpdateListingRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	Address      *string  `json:"address" validate:"omitempty,min=1,max=300"`
	City         *string  `json:"city" validate:"omitempty,min=1,max=100"`
	District     *string  `json:"district" validate:"omitempty,min=1,max=100"`
	Zipcode      *string  `json:"zipcode" validate:"omitempty,min=1,max=12"`
	Location     *string  `json:"location" validate:"omitempty,min=1,max=300"`
	Locality     *string  `json:"locality" validate:"omitempty,max=100"`
	Rent         *float64 `json:"rent" validate:"omitempty,gt=0"`
	PropertyType *string  `json:"property_type"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,gte=0,lte=50"`
	BHKType      *string  `json:"bhk_type" validate:"omitempty,max=20"`
	AreaSqft     *float64 `json:"area_sqft" validate:"omitempty,gt=0"`
	Deposit      *float64 `json:"deposit" validate:"omitempty,gte=0"`
	Amenities    []string `json:"amenities" validate:"omitempty,dive,max=60"`
	AllowBroker  *bool    `json:"allow_broker"`
}

// ImageUpload is one file received with a listing form.
type ImageUpload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// SearchParams are the raw query parameters of a search endpoint.
type SearchParams struct {
	Search   string
	Category string
	Range    string
	Sort     string
}

// SearchResponse wraps a capped search result.
type SearchResponse[T any] struct {
	Results []T    `json:"results"`
	Count   int    `json:"count"`
	Limit   int    `json:"limit"`
	Sort    string `json:"sort"`
	Cached  bool   `json:"cached"`
}
