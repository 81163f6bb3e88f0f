package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/search"
)

var errNonFinite = errors.New("value must be a finite number")

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
	Skipped  int `json:"skipped"`
}

var requiredCSVHeaders = []string{"title", "address", "city", "district", "zipcode", "location", "rent", "property_type"}

// ImportListingsCSV ingests listings for one owner from a CSV reader. Rows
// without a title or address are skipped; amenities are separated by ';'.
func (s *ListingsService) ImportListingsCSV(ctx context.Context, actor Actor, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, ValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, err := buildHeaderIndex(header)
	if err != nil {
		return UploadSummary{}, err
	}

	var (
		records []entity.Listing
		skipped int
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}
		rowNum++

		col := func(name string) string {
			i, ok := indexMap[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		title := col("title")
		address := col("address")
		if title == "" || address == "" {
			skipped++
			continue
		}

		rent, err := strconv.ParseFloat(col("rent"), 64)
		if err != nil || math.IsNaN(rent) || math.IsInf(rent, 0) || rent <= 0 {
			return UploadSummary{}, ValidationError{Message: fmt.Sprintf("invalid rent value on row %d", rowNum)}
		}

		propertyType, ok := search.ListingSchema.CanonicalCategory(col("property_type"))
		if !ok {
			return UploadSummary{}, ValidationError{Message: fmt.Sprintf("invalid property_type value on row %d", rowNum)}
		}

		bedrooms, err := parseOptionalInt(col("bedrooms"))
		if err != nil {
			return UploadSummary{}, ValidationError{Message: fmt.Sprintf("invalid bedrooms value on row %d", rowNum)}
		}
		area, err := parseOptionalFloat(col("area_sqft"))
		if err != nil {
			return UploadSummary{}, ValidationError{Message: fmt.Sprintf("invalid area_sqft value on row %d", rowNum)}
		}
		deposit, err := parseOptionalFloat(col("deposit"))
		if err != nil {
			return UploadSummary{}, ValidationError{Message: fmt.Sprintf("invalid deposit value on row %d", rowNum)}
		}

		allowBroker := true
		if raw := col("allow_broker"); raw != "" {
			allowBroker, err = strconv.ParseBool(raw)
			if err != nil {
				return UploadSummary{}, ValidationError{Message: fmt.Sprintf("invalid allow_broker value on row %d", rowNum)}
			}
		}

		listing := entity.Listing{
			Title:        title,
			Description:  col("description"),
			Address:      address,
			City:         col("city"),
			District:     col("district"),
			Zipcode:      col("zipcode"),
			Location:     col("location"),
			Locality:     col("locality"),
			Rent:         rent,
			PropertyType: propertyType,
			BHKType:      col("bhk_type"),
			AreaSqft:     area,
			Deposit:      deposit,
			Amenities:    cleanList(strings.Split(col("amenities"), ";")),
			AllowBroker:  allowBroker,
		}
		if bedrooms != nil {
			listing.Bedrooms = *bedrooms
		}
		records = append(records, listing)
	}

	result, err := s.repo.BulkUpsertListings(ctx, actor.UserID, records)
	if err != nil {
		return UploadSummary{}, err
	}
	if result.Total > 0 {
		s.search.cache.Invalidate(ctx, search.ListingSchema.Name)
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
		Skipped:  skipped,
	}, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, ValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func parseOptionalFloat(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errNonFinite
	}
	return &f, nil
}

func parseOptionalInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
