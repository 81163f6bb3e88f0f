package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/search"
)

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrListingDuplicate = errors.New("listing already exists")
)

// ListingsRepository describes persistence operations for listings.
type ListingsRepository interface {
	Create(ctx context.Context, listing *entity.Listing) (*entity.Listing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	List(ctx context.Context, page, perPage int) ([]entity.Listing, error)
	Search(ctx context.Context, query search.Query) ([]entity.Listing, error)
	Update(ctx context.Context, id uuid.UUID, patch ListingPatch) (*entity.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkUpsertListings(ctx context.Context, ownerID uuid.UUID, records []entity.Listing) (BulkUpsertResult, error)
}

// ListingPatch lists the columns an update may touch. Nil fields are skipped.
type ListingPatch struct {
	Title        *string
	Description  *string
	Address      *string
	City         *string
	District     *string
	Zipcode      *string
	Location     *string
	Locality     *string
	Rent         *float64
	PropertyType *string
	Bedrooms     *int
	BHKType      *string
	AreaSqft     *float64
	Deposit      *float64
	Amenities    []string
	AllowBroker  *bool
	ImageURLs    []string
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int
	Updated  int
	Total    int
}

// listingColumns maps logical search fields onto listing columns.
var listingColumns = map[string]string{
	search.FieldCity:         "l.city",
	search.FieldDistrict:     "l.district",
	search.FieldLocality:     "l.locality",
	search.FieldPropertyType: "l.property_type",
	search.FieldRent:         "l.rent",
}

const listingSelect = `
        l.id, l.owner_id, u.name, u.email, l.title, l.description, l.address, l.city,
        l.district, l.zipcode, l.location, l.locality, l.rent, l.property_type, l.bedrooms,
        l.bhk_type, l.area_sqft, l.deposit, l.amenities, l.allow_broker, l.image_urls,
        l.rating, l.created_at, l.updated_at`

// PGXListingsRepository implements ListingsRepository using pgx.
type PGXListingsRepository struct {
	pool pgxPool
}

// NewPGXListingsRepository wires a pgx backed repository.
func NewPGXListingsRepository(pool *pgxpool.Pool) *PGXListingsRepository {
	return &PGXListingsRepository{pool: pool}
}

const insertListingSQL = `
        WITH l AS (
            INSERT INTO listings (
                owner_id, title, description, address, city, district, zipcode, location,
                locality, rent, property_type, bedrooms, bhk_type, area_sqft, deposit,
                amenities, allow_broker, image_urls
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
            RETURNING *
        )
        SELECT` + listingSelect + `
        FROM l JOIN users u ON u.id = l.owner_id`

// Create inserts a new listing and returns the stored row with its owner summary.
func (r *PGXListingsRepository) Create(ctx context.Context, listing *entity.Listing) (*entity.Listing, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing payload is nil")
	}

	row := r.pool.QueryRow(ctx, insertListingSQL,
		listing.OwnerID,
		listing.Title,
		listing.Description,
		listing.Address,
		listing.City,
		listing.District,
		listing.Zipcode,
		listing.Location,
		listing.Locality,
		listing.Rent,
		listing.PropertyType,
		listing.Bedrooms,
		listing.BHKType,
		floatOrNil(listing.AreaSqft),
		floatOrNil(listing.Deposit),
		stringSliceOrEmpty(listing.Amenities),
		listing.AllowBroker,
		stringSliceOrEmpty(listing.ImageURLs),
	)

	stored, err := scanListing(row)
	if err != nil {
		if isUniqueViolation(err, "listings_owner_title_address_key") {
			return nil, fmt.Errorf("%w: %v", ErrListingDuplicate, err)
		}
		return nil, fmt.Errorf("insert listing: %w", err)
	}
	return stored, nil
}

// FindByID retrieves a listing by identifier.
func (r *PGXListingsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+listingSelect+` FROM listings l JOIN users u ON u.id = l.owner_id WHERE l.id = $1`, id)

	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("query listing by id: %w", err)
	}
	return listing, nil
}

// List returns listings, newest first.
func (r *PGXListingsRepository) List(ctx context.Context, page, perPage int) ([]entity.Listing, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	rows, err := r.pool.Query(ctx, `SELECT`+listingSelect+`
        FROM listings l JOIN users u ON u.id = l.owner_id
        ORDER BY l.created_at DESC, l.id DESC
        LIMIT $1 OFFSET $2`, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// Search executes a built query. Rows come back in creation order and are cut
// at query.Cap before any caller-side sorting.
func (r *PGXListingsRepository) Search(ctx context.Context, query search.Query) ([]entity.Listing, error) {
	if query.Predicate.MatchNone {
		return []entity.Listing{}, nil
	}

	where, args, err := whereClause(query.Predicate, listingColumns, 1)
	if err != nil {
		return nil, err
	}

	sql := strings.Builder{}
	sql.WriteString(`SELECT` + listingSelect + ` FROM listings l JOIN users u ON u.id = l.owner_id`)
	if where != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}
	sql.WriteString(fmt.Sprintf(" ORDER BY l.created_at ASC, l.id ASC LIMIT $%d", len(args)+1))
	args = append(args, query.Cap)

	rows, err := r.pool.Query(ctx, sql.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// Update patches listing attributes.
func (r *PGXListingsRepository) Update(ctx context.Context, id uuid.UUID, patch ListingPatch) (*entity.Listing, error) {
	var (
		setClauses []string
		args       []any
		idx        = 1
	)
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.City != nil {
		set("city", *patch.City)
	}
	if patch.District != nil {
		set("district", *patch.District)
	}
	if patch.Zipcode != nil {
		set("zipcode", *patch.Zipcode)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.Locality != nil {
		set("locality", *patch.Locality)
	}
	if patch.Rent != nil {
		set("rent", *patch.Rent)
	}
	if patch.PropertyType != nil {
		set("property_type", *patch.PropertyType)
	}
	if patch.Bedrooms != nil {
		set("bedrooms", *patch.Bedrooms)
	}
	if patch.BHKType != nil {
		set("bhk_type", *patch.BHKType)
	}
	if patch.AreaSqft != nil {
		set("area_sqft", *patch.AreaSqft)
	}
	if patch.Deposit != nil {
		set("deposit", *patch.Deposit)
	}
	if patch.Amenities != nil {
		set("amenities", patch.Amenities)
	}
	if patch.AllowBroker != nil {
		set("allow_broker", *patch.AllowBroker)
	}
	if patch.ImageURLs != nil {
		set("image_urls", patch.ImageURLs)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
        WITH l AS (
            UPDATE listings SET %s WHERE id = $%d RETURNING *
        )
        SELECT`+listingSelect+`
        FROM l JOIN users u ON u.id = l.owner_id`, strings.Join(setClauses, ", "), idx)

	listing, err := scanListing(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		if isUniqueViolation(err, "listings_owner_title_address_key") {
			return nil, fmt.Errorf("%w: %v", ErrListingDuplicate, err)
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return listing, nil
}

// Delete removes a listing by id.
func (r *PGXListingsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrListingNotFound
	}
	return nil
}

const bulkUpsertListingSQL = `
        INSERT INTO listings (
            owner_id, title, description, address, city, district, zipcode, location,
            locality, rent, property_type, bedrooms, bhk_type, area_sqft, deposit, amenities, allow_broker
        )
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        ON CONFLICT (owner_id, title, address) DO UPDATE SET
            description = EXCLUDED.description,
            city = EXCLUDED.city,
            district = EXCLUDED.district,
            zipcode = EXCLUDED.zipcode,
            location = EXCLUDED.location,
            locality = EXCLUDED.locality,
            rent = EXCLUDED.rent,
            property_type = EXCLUDED.property_type,
            bedrooms = EXCLUDED.bedrooms,
            bhk_type = EXCLUDED.bhk_type,
            area_sqft = EXCLUDED.area_sqft,
            deposit = EXCLUDED.deposit,
            amenities = EXCLUDED.amenities,
            allow_broker = EXCLUDED.allow_broker,
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsertListings persists a batch of listings for one owner. Rows are keyed
// by (owner, title, address) so re-importing the same file updates in place.
func (r *PGXListingsRepository) BulkUpsertListings(ctx context.Context, ownerID uuid.UUID, records []entity.Listing) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		var inserted bool
		err := tx.QueryRow(ctx, bulkUpsertListingSQL,
			ownerID,
			record.Title,
			record.Description,
			record.Address,
			record.City,
			record.District,
			record.Zipcode,
			record.Location,
			record.Locality,
			record.Rent,
			record.PropertyType,
			record.Bedrooms,
			record.BHKType,
			floatOrNil(record.AreaSqft),
			floatOrNil(record.Deposit),
			stringSliceOrEmpty(record.Amenities),
			record.AllowBroker,
		).Scan(&inserted)
		if err != nil {
			return result, fmt.Errorf("bulk upsert listing %q: %w", record.Title, err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

func scanListing(row scanner) (*entity.Listing, error) {
	var (
		l     entity.Listing
		owner entity.OwnerSummary
	)
	err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&owner.Name,
		&owner.Email,
		&l.Title,
		&l.Description,
		&l.Address,
		&l.City,
		&l.District,
		&l.Zipcode,
		&l.Location,
		&l.Locality,
		&l.Rent,
		&l.PropertyType,
		&l.Bedrooms,
		&l.BHKType,
		&l.AreaSqft,
		&l.Deposit,
		&l.Amenities,
		&l.AllowBroker,
		&l.ImageURLs,
		&l.Rating,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Owner = &owner
	l.Amenities = stringSliceOrEmpty(l.Amenities)
	l.ImageURLs = stringSliceOrEmpty(l.ImageURLs)
	return &l, nil
}

func scanListings(rows pgx.Rows) ([]entity.Listing, error) {
	listings := make([]entity.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}
