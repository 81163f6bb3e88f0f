package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/middleware"
	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/search"
)

var errNotImplemented = errors.New("not implemented")

type usersRepoForHandler struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, user *entity.User) (*entity.User, error)
	list        func(ctx context.Context) ([]entity.User, error)
	update      func(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (u *usersRepoForHandler) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u.findByEmail != nil {
		return u.findByEmail(ctx, email)
	}
	return nil, errNotImplemented
}

func (u *usersRepoForHandler) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u.findByID != nil {
		return u.findByID(ctx, id)
	}
	return nil, errNotImplemented
}

func (u *usersRepoForHandler) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if u.create != nil {
		return u.create(ctx, user)
	}
	return nil, errNotImplemented
}

func (u *usersRepoForHandler) List(ctx context.Context) ([]entity.User, error) {
	if u.list != nil {
		return u.list(ctx)
	}
	return nil, errNotImplemented
}

func (u *usersRepoForHandler) Update(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (*entity.User, error) {
	if u.update != nil {
		return u.update(ctx, id, patch)
	}
	return nil, errNotImplemented
}

func (u *usersRepoForHandler) Delete(ctx context.Context, id uuid.UUID) error {
	if u.delete != nil {
		return u.delete(ctx, id)
	}
	return errNotImplemented
}

type listingsRepoForHandler struct {
	create   func(ctx context.Context, listing *entity.Listing) (*entity.Listing, error)
	findByID func(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	list     func(ctx context.Context, page, perPage int) ([]entity.Listing, error)
	search   func(ctx context.Context, query search.Query) ([]entity.Listing, error)
	update   func(ctx context.Context, id uuid.UUID, patch repository.ListingPatch) (*entity.Listing, error)
	delete   func(ctx context.Context, id uuid.UUID) error
	bulk     func(ctx context.Context, ownerID uuid.UUID, records []entity.Listing) (repository.BulkUpsertResult, error)
}

func (l *listingsRepoForHandler) Create(ctx context.Context, listing *entity.Listing) (*entity.Listing, error) {
	if l.create != nil {
		return l.create(ctx, listing)
	}
	return nil, errNotImplemented
}

func (l *listingsRepoForHandler) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	if l.findByID != nil {
		return l.findByID(ctx, id)
	}
	return nil, errNotImplemented
}

func (l *listingsRepoForHandler) List(ctx context.Context, page, perPage int) ([]entity.Listing, error) {
	if l.list != nil {
		return l.list(ctx, page, perPage)
	}
	return nil, errNotImplemented
}

func (l *listingsRepoForHandler) Search(ctx context.Context, query search.Query) ([]entity.Listing, error) {
	if l.search != nil {
		return l.search(ctx, query)
	}
	return nil, errNotImplemented
}

func (l *listingsRepoForHandler) Update(ctx context.Context, id uuid.UUID, patch repository.ListingPatch) (*entity.Listing, error) {
	if l.update != nil {
		return l.update(ctx, id, patch)
	}
	return nil, errNotImplemented
}

func (l *listingsRepoForHandler) Delete(ctx context.Context, id uuid.UUID) error {
	if l.delete != nil {
		return l.delete(ctx, id)
	}
	return errNotImplemented
}

func (l *listingsRepoForHandler) BulkUpsertListings(ctx context.Context, ownerID uuid.UUID, records []entity.Listing) (repository.BulkUpsertResult, error) {
	if l.bulk != nil {
		return l.bulk(ctx, ownerID, records)
	}
	return repository.BulkUpsertResult{}, errNotImplemented
}

type roomRequestsRepoForHandler struct {
	create   func(ctx context.Context, req *entity.RoomRequest) (*entity.RoomRequest, error)
	findByID func(ctx context.Context, id uuid.UUID) (*entity.RoomRequest, error)
	list     func(ctx context.Context) ([]entity.RoomRequest, error)
	search   func(ctx context.Context, query search.Query) ([]entity.RoomRequest, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (r *roomRequestsRepoForHandler) Create(ctx context.Context, req *entity.RoomRequest) (*entity.RoomRequest, error) {
	if r.create != nil {
		return r.create(ctx, req)
	}
	return nil, errNotImplemented
}

func (r *roomRequestsRepoForHandler) FindByID(ctx context.Context, id uuid.UUID) (*entity.RoomRequest, error) {
	if r.findByID != nil {
		return r.findByID(ctx, id)
	}
	return nil, errNotImplemented
}

func (r *roomRequestsRepoForHandler) List(ctx context.Context) ([]entity.RoomRequest, error) {
	if r.list != nil {
		return r.list(ctx)
	}
	return nil, errNotImplemented
}

func (r *roomRequestsRepoForHandler) Search(ctx context.Context, query search.Query) ([]entity.RoomRequest, error) {
	if r.search != nil {
		return r.search(ctx, query)
	}
	return nil, errNotImplemented
}

func (r *roomRequestsRepoForHandler) Delete(ctx context.Context, id uuid.UUID) error {
	if r.delete != nil {
		return r.delete(ctx, id)
	}
	return errNotImplemented
}

type plansRepoForHandler struct {
	list     func(ctx context.Context) ([]entity.SubscriptionPlan, error)
	findByID func(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error)
	create   func(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error)
	update   func(ctx context.Context, id uuid.UUID, patch repository.PlanPatch) (*entity.SubscriptionPlan, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (p *plansRepoForHandler) List(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	if p.list != nil {
		return p.list(ctx)
	}
	return nil, errNotImplemented
}

func (p *plansRepoForHandler) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	if p.findByID != nil {
		return p.findByID(ctx, id)
	}
	return nil, errNotImplemented
}

func (p *plansRepoForHandler) Create(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error) {
	if p.create != nil {
		return p.create(ctx, plan)
	}
	return nil, errNotImplemented
}

func (p *plansRepoForHandler) Update(ctx context.Context, id uuid.UUID, patch repository.PlanPatch) (*entity.SubscriptionPlan, error) {
	if p.update != nil {
		return p.update(ctx, id, patch)
	}
	return nil, errNotImplemented
}

func (p *plansRepoForHandler) Delete(ctx context.Context, id uuid.UUID) error {
	if p.delete != nil {
		return p.delete(ctx, id)
	}
	return errNotImplemented
}

type recordingImageHost struct {
	uploaded []string
	deleted  []string
}

func (h *recordingImageHost) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := "https://img.example.com/" + name
	h.uploaded = append(h.uploaded, url)
	return url, nil
}

func (h *recordingImageHost) Delete(ctx context.Context, url string) error {
	h.deleted = append(h.deleted, url)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target string, body []byte) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

// withActor stores identity values the way the JWT middleware does.
func withActor(c echo.Context, id uuid.UUID, role string) {
	middleware.SetIdentity(c, middleware.Identity{UserID: id, Email: "actor@example.com", Role: role})
}

type formFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formFile) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(f.content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req, httptest.NewRecorder()
}
