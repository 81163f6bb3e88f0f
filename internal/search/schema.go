package search

import "strings"

// Logical field names understood by predicates. Stores map them to their own columns.
const (
	FieldCity         = "city"
	FieldDistrict     = "district"
	FieldLocality     = "locality"
	FieldPropertyType = "property_type"
	FieldRent         = "rent"

	FieldLocation = "location"
	FieldArea     = "area"
	FieldName     = "name"
	FieldGender   = "gender"
	FieldBudget   = "budget"
)

// Schema describes one searchable collection: which text attributes the free-text
// term is matched against, which attribute carries the category enum, and which
// numeric attribute the range spec constrains.
type Schema struct {
	Name          string
	TextFields    []string
	CategoryField string
	Categories    []string
	RangeField    string
}

// ListingSchema covers rental listings.
var ListingSchema = Schema{
	Name:          "listings",
	TextFields:    []string{FieldCity, FieldDistrict, FieldLocality, FieldPropertyType},
	CategoryField: FieldPropertyType,
	Categories:    []string{"apartment", "independent_house", "villa", "studio", "pg", "shared_room"},
	RangeField:    FieldRent,
}

// RoomRequestSchema covers room requests posted by people looking for a place.
var RoomRequestSchema = Schema{
	Name:          "room_requests",
	TextFields:    []string{FieldLocation, FieldCity, FieldArea, FieldName},
	CategoryField: FieldGender,
	Categories:    []string{"Male", "Female", "Other"},
	RangeField:    FieldBudget,
}

// CanonicalCategory resolves raw case-insensitively against the enum.
func (s Schema) CanonicalCategory(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, candidate := range s.Categories {
		if strings.EqualFold(candidate, raw) {
			return candidate, true
		}
	}
	return "", false
}
