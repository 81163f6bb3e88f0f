package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/search"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, user *entity.User) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
	update      func(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("FindByID not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, user)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("List not implemented")
}

func (m *mockUsersRepository) Update(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error) {
	if m.update != nil {
		return m.update(ctx, id, patch)
	}
	return nil, errors.New("Update not implemented")
}

func (m *mockUsersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("Delete not implemented")
}

type mockListingsRepository struct {
	create     func(ctx context.Context, listing *entity.Listing) (*entity.Listing, error)
	findByID   func(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	list       func(ctx context.Context, page, perPage int) ([]entity.Listing, error)
	search     func(ctx context.Context, query search.Query) ([]entity.Listing, error)
	update     func(ctx context.Context, id uuid.UUID, patch repository.ListingPatch) (*entity.Listing, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	bulkUpsert func(ctx context.Context, ownerID uuid.UUID, records []entity.Listing) (repository.BulkUpsertResult, error)
}

func (m *mockListingsRepository) Create(ctx context.Context, listing *entity.Listing) (*entity.Listing, error) {
	if m.create != nil {
		return m.create(ctx, listing)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockListingsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockListingsRepository) List(ctx context.Context, page, perPage int) ([]entity.Listing, error) {
	if m.list != nil {
		return m.list(ctx, page, perPage)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockListingsRepository) Search(ctx context.Context, query search.Query) ([]entity.Listing, error) {
	if m.search != nil {
		return m.search(ctx, query)
	}
	return nil, errors.New("search not implemented")
}

func (m *mockListingsRepository) Update(ctx context.Context, id uuid.UUID, patch repository.ListingPatch) (*entity.Listing, error) {
	if m.update != nil {
		return m.update(ctx, id, patch)
	}
	return nil, errors.New("update not implemented")
}

func (m *mockListingsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

func (m *mockListingsRepository) BulkUpsertListings(ctx context.Context, ownerID uuid.UUID, records []entity.Listing) (repository.BulkUpsertResult, error) {
	if m.bulkUpsert != nil {
		return m.bulkUpsert(ctx, ownerID, records)
	}
	return repository.BulkUpsertResult{}, errors.New("bulk upsert not implemented")
}

type mockRoomRequestsRepository struct {
	create   func(ctx context.Context, req *entity.RoomRequest) (*entity.RoomRequest, error)
	findByID func(ctx context.Context, id uuid.UUID) (*entity.RoomRequest, error)
	list     func(ctx context.Context) ([]entity.RoomRequest, error)
	search   func(ctx context.Context, query search.Query) ([]entity.RoomRequest, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRoomRequestsRepository) Create(ctx context.Context, req *entity.RoomRequest) (*entity.RoomRequest, error) {
	if m.create != nil {
		return m.create(ctx, req)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockRoomRequestsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomRequest, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockRoomRequestsRepository) List(ctx context.Context) ([]entity.RoomRequest, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockRoomRequestsRepository) Search(ctx context.Context, query search.Query) ([]entity.RoomRequest, error) {
	if m.search != nil {
		return m.search(ctx, query)
	}
	return nil, errors.New("search not implemented")
}

func (m *mockRoomRequestsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

type mockPlansRepository struct {
	list     func(ctx context.Context) ([]entity.SubscriptionPlan, error)
	findByID func(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error)
	create   func(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error)
	update   func(ctx context.Context, id uuid.UUID, patch repository.PlanPatch) (*entity.SubscriptionPlan, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlansRepository) List(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockPlansRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockPlansRepository) Create(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error) {
	if m.create != nil {
		return m.create(ctx, plan)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockPlansRepository) Update(ctx context.Context, id uuid.UUID, patch repository.PlanPatch) (*entity.SubscriptionPlan, error) {
	if m.update != nil {
		return m.update(ctx, id, patch)
	}
	return nil, errors.New("update not implemented")
}

func (m *mockPlansRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

// fakeImageHost records uploads and deletions in memory.
type fakeImageHost struct {
	mu        sync.Mutex
	uploaded  []string
	deleted   []string
	failAfter int
}

func (f *fakeImageHost) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter > 0 && len(f.uploaded) >= f.failAfter {
		return "", errors.New("image service unavailable")
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	url := "https://img.example.com/" + name
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeImageHost) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func imageUpload(name string) dto.ImageUpload {
	return dto.ImageUpload{Filename: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("bytes")), nil
	}}
}
