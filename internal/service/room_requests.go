package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/roomshare/api/internal/cache"
	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/search"
)

const defaultGender = "Other"

// RoomRequestsService manages room requests posted by seekers.
type RoomRequestsService struct {
	repo        repository.RoomRequestsRepository
	users       repository.UsersRepository
	phoneRegion string
	search      searchRunner
}

// RoomRequestsOptions carries the optional collaborators of RoomRequestsService.
type RoomRequestsOptions struct {
	PreviewLimit int
	PhoneRegion  string
	Cache        *cache.SearchCache
	Metrics      *MetricsService
	Logger       *zap.Logger
}

// NewRoomRequestsService wires a RoomRequestsService.
func NewRoomRequestsService(repo repository.RoomRequestsRepository, users repository.UsersRepository, opts RoomRequestsOptions) *RoomRequestsService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &RoomRequestsService{
		repo:        repo,
		users:       users,
		phoneRegion: opts.PhoneRegion,
		search: searchRunner{
			builder: search.NewBuilder(search.RoomRequestSchema, opts.PreviewLimit),
			cache:   opts.Cache,
			metrics: opts.Metrics,
			logger:  opts.Logger,
		},
	}
}

// Create stores a room request for the actor. Name, number and photo fall back
// to the actor's profile.
func (s *RoomRequestsService) Create(ctx context.Context, actor Actor, req dto.CreateRoomRequest) (*entity.RoomRequest, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" || req.Budget <= 0 {
		return nil, ValidationError{Message: "location and a positive budget are required"}
	}

	gender := defaultGender
	if strings.TrimSpace(req.Gender) != "" {
		canonical, ok := search.RoomRequestSchema.CanonicalCategory(req.Gender)
		if !ok {
			return nil, ValidationError{Message: fmt.Sprintf("invalid gender %q; allowed: %s",
				req.Gender, strings.Join(search.RoomRequestSchema.Categories, ", "))}
		}
		gender = canonical
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	name := firstNonEmpty(req.Name, user.Name)
	rawNumber := firstNonEmpty(req.Number, user.Number)
	var number string
	if rawNumber != "" {
		number, err = normalizeContactNumber(rawNumber, s.phoneRegion)
		if err != nil {
			return nil, err
		}
	}

	stored, err := s.repo.Create(ctx, &entity.RoomRequest{
		UserID:   user.ID,
		Name:     name,
		Number:   number,
		City:     strings.TrimSpace(req.City),
		Area:     strings.TrimSpace(req.Area),
		Location: location,
		Budget:   req.Budget,
		Gender:   gender,
		Photo:    firstNonEmpty(req.Photo, user.Photo),
	})
	if err != nil {
		return nil, err
	}

	s.search.cache.Invalidate(ctx, search.RoomRequestSchema.Name)
	return stored, nil
}

// List returns every room request.
func (s *RoomRequestsService) List(ctx context.Context) ([]entity.RoomRequest, error) {
	return s.repo.List(ctx)
}

// Search runs a capped preview search over room requests.
func (s *RoomRequestsService) Search(ctx context.Context, params dto.SearchParams) (dto.SearchResponse[entity.RoomRequest], error) {
	return runSearch(ctx, s.search, params, s.repo.Search)
}

// Delete removes a room request. Only its author or an admin may do so.
func (s *RoomRequestsService) Delete(ctx context.Context, actor Actor, id string) error {
	requestID, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if existing.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, requestID); err != nil {
		return err
	}

	s.search.cache.Invalidate(ctx, search.RoomRequestSchema.Name)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
