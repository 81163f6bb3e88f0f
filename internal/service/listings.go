package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/roomshare/api/internal/cache"
	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/imagehost"
	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/search"
)

const defaultMaxImages = 10

// ListingsService exposes listing CRUD, search and bulk import.
type ListingsService struct {
	repo      repository.ListingsRepository
	images    imagehost.Host
	search    searchRunner
	maxImages int
}

// ListingsOptions carries the optional collaborators of ListingsService.
type ListingsOptions struct {
	PreviewLimit int
	MaxImages    int
	Cache        *cache.SearchCache
	Metrics      *MetricsService
	Logger       *zap.Logger
}

// NewListingsService creates a new instance of ListingsService.
func NewListingsService(repo repository.ListingsRepository, images imagehost.Host, opts ListingsOptions) *ListingsService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxImages <= 0 {
		opts.MaxImages = defaultMaxImages
	}
	return &ListingsService{
		repo:   repo,
		images: images,
		search: searchRunner{
			builder: search.NewBuilder(search.ListingSchema, opts.PreviewLimit),
			cache:   opts.Cache,
			metrics: opts.Metrics,
			logger:  opts.Logger,
		},
		maxImages: opts.MaxImages,
	}
}

// Paging applies the listing defaults: page 1, 20 per page, at most 100.
func Paging(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// List returns listings respecting pagination defaults.
func (s *ListingsService) List(ctx context.Context, page, perPage int) ([]entity.Listing, error) {
	page, perPage = Paging(page, perPage)
	return s.repo.List(ctx, page, perPage)
}

// Get returns one listing by id.
func (s *ListingsService) Get(ctx context.Context, id string) (*entity.Listing, error) {
	listingID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, listingID)
}

// Search runs a capped preview search over listings.
func (s *ListingsService) Search(ctx context.Context, params dto.SearchParams) (dto.SearchResponse[entity.Listing], error) {
	return runSearch(ctx, s.search, params, s.repo.Search)
}

// Create validates the listing, uploads its images and stores it for the actor.
func (s *ListingsService) Create(ctx context.Context, actor Actor, req dto.CreateListingRequest, images []dto.ImageUpload) (*entity.Listing, error) {
	propertyType, ok := search.ListingSchema.CanonicalCategory(req.PropertyType)
	if !ok {
		return nil, invalidPropertyType(req.PropertyType)
	}
	if err := finiteAmounts(&req.Rent, req.AreaSqft, req.Deposit); err != nil {
		return nil, err
	}
	if len(images) > s.maxImages {
		return nil, ValidationError{Message: fmt.Sprintf("at most %d images may be uploaded", s.maxImages)}
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	allowBroker := true
	if req.AllowBroker != nil {
		allowBroker = *req.AllowBroker
	}

	listing, err := s.repo.Create(ctx, &entity.Listing{
		OwnerID:      actor.UserID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		District:     strings.TrimSpace(req.District),
		Zipcode:      strings.TrimSpace(req.Zipcode),
		Location:     strings.TrimSpace(req.Location),
		Locality:     strings.TrimSpace(req.Locality),
		Rent:         req.Rent,
		PropertyType: propertyType,
		Bedrooms:     req.Bedrooms,
		BHKType:      strings.TrimSpace(req.BHKType),
		AreaSqft:     req.AreaSqft,
		Deposit:      req.Deposit,
		Amenities:    cleanList(req.Amenities),
		AllowBroker:  allowBroker,
		ImageURLs:    urls,
	})
	if err != nil {
		s.discardImages(ctx, urls)
		return nil, err
	}

	s.search.cache.Invalidate(ctx, search.ListingSchema.Name)
	return listing, nil
}

// Update patches a listing owned by the actor. New images replace the old set.
func (s *ListingsService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateListingRequest, images []dto.ImageUpload) (*entity.Listing, error) {
	existing, err := s.ownedListing(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	patch := repository.ListingPatch{
		Title:       trimmedOrNil(req.Title),
		Description: trimmedOrNil(req.Description),
		Address:     trimmedOrNil(req.Address),
		City:        trimmedOrNil(req.City),
		District:    trimmedOrNil(req.District),
		Zipcode:     trimmedOrNil(req.Zipcode),
		Location:    trimmedOrNil(req.Location),
		Locality:    trimmedOrNil(req.Locality),
		Rent:        req.Rent,
		Bedrooms:    req.Bedrooms,
		BHKType:     trimmedOrNil(req.BHKType),
		AreaSqft:    req.AreaSqft,
		Deposit:     req.Deposit,
		AllowBroker: req.AllowBroker,
	}
	if req.Amenities != nil {
		patch.Amenities = cleanList(req.Amenities)
	}
	if req.PropertyType != nil {
		propertyType, ok := search.ListingSchema.CanonicalCategory(*req.PropertyType)
		if !ok {
			return nil, invalidPropertyType(*req.PropertyType)
		}
		patch.PropertyType = &propertyType
	}
	if err := finiteAmounts(req.Rent, req.AreaSqft, req.Deposit); err != nil {
		return nil, err
	}
	if len(images) > s.maxImages {
		return nil, ValidationError{Message: fmt.Sprintf("at most %d images may be uploaded", s.maxImages)}
	}

	var uploaded []string
	if len(images) > 0 {
		uploaded, err = s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		patch.ImageURLs = uploaded
	}

	listing, err := s.repo.Update(ctx, existing.ID, patch)
	if err != nil {
		s.discardImages(ctx, uploaded)
		return nil, err
	}
	if len(uploaded) > 0 {
		s.discardImages(ctx, existing.ImageURLs)
	}

	s.search.cache.Invalidate(ctx, search.ListingSchema.Name)
	return listing, nil
}

// Delete removes a listing owned by the actor together with its images.
func (s *ListingsService) Delete(ctx context.Context, actor Actor, id string) error {
	existing, err := s.ownedListing(ctx, actor, id)
	if err != nil {
		return err
	}

	s.discardImages(ctx, existing.ImageURLs)
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return err
	}

	s.search.cache.Invalidate(ctx, search.ListingSchema.Name)
	return nil
}

func (s *ListingsService) ownedListing(ctx context.Context, actor Actor, id string) (*entity.Listing, error) {
	listingID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}
	return existing, nil
}

// uploadImages pushes every file to the image host. On failure the files
// already uploaded are removed again.
func (s *ListingsService) uploadImages(ctx context.Context, images []dto.ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	if len(images) == 0 {
		return urls, nil
	}
	if s.images == nil {
		return nil, errors.New("image host is not configured")
	}

	for _, img := range images {
		url, err := s.uploadOne(ctx, img)
		if err != nil {
			s.discardImages(ctx, urls)
			if errors.Is(err, imagehost.ErrUnsupportedImage) {
				return nil, ValidationError{Message: err.Error()}
			}
			return nil, fmt.Errorf("upload image %s: %w", img.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *ListingsService) uploadOne(ctx context.Context, img dto.ImageUpload) (string, error) {
	rc, err := img.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.images.Upload(ctx, img.Filename, rc)
}

func (s *ListingsService) discardImages(ctx context.Context, urls []string) {
	if s.images == nil {
		return
	}
	for _, url := range urls {
		if err := s.images.Delete(ctx, url); err != nil {
			s.search.logger.Warn("image delete failed", zap.String("url", url), zap.Error(err))
		}
	}
}

func invalidPropertyType(raw string) error {
	return ValidationError{Message: fmt.Sprintf("invalid property type %q; allowed: %s",
		raw, strings.Join(search.ListingSchema.Categories, ", "))}
}

// finiteAmounts rejects NaN and infinities in rent, area_sqft and deposit, in
// that order. Nil values are skipped.
func finiteAmounts(rent, areaSqft, deposit *float64) error {
	fields := []struct {
		name  string
		value *float64
	}{{"rent", rent}, {"area_sqft", areaSqft}, {"deposit", deposit}}
	for _, f := range fields {
		if f.value != nil && (math.IsNaN(*f.value) || math.IsInf(*f.value, 0)) {
			return ValidationError{Message: f.name + " must be a finite number"}
		}
	}
	return nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
