package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/service"
)

func newSubscriptionsHandler(repo repository.SubscriptionPlansRepository) *SubscriptionsHandler {
	return NewSubscriptionsHandler(service.NewSubscriptionsService(repo))
}

func TestSubscriptionsHandler_Create(t *testing.T) {
	e := newTestEcho()
	repo := &plansRepoForHandler{
		create: func(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error) {
			if plan.Name == "Gold" {
				return nil, repository.ErrPlanNameDuplicate
			}
			created := *plan
			created.ID = uuid.New()
			return &created, nil
		},
	}
	handler := newSubscriptionsHandler(repo)

	cases := map[string]struct {
		payload  dto.CreatePlanRequest
		wantCode int
	}{
		"success":        {payload: dto.CreatePlanRequest{Name: "Silver", PriceMonthly: 499, Features: []string{"5 listings"}}, wantCode: http.StatusCreated},
		"missing name":   {payload: dto.CreatePlanRequest{PriceMonthly: 499}, wantCode: http.StatusBadRequest},
		"zero price":     {payload: dto.CreatePlanRequest{Name: "Free"}, wantCode: http.StatusBadRequest},
		"duplicate name": {payload: dto.CreatePlanRequest{Name: "Gold", PriceMonthly: 999}, wantCode: http.StatusConflict},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body, _ := json.Marshal(tc.payload)
			req, rec := jsonRequest(http.MethodPost, "/api/subscriptions/plans", body)
			c := e.NewContext(req, rec)

			_ = handler.Create(c)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSubscriptionsHandler_ReadUpdateDelete(t *testing.T) {
	e := newTestEcho()
	planID := uuid.New()
	repo := &plansRepoForHandler{
		list: func(ctx context.Context) ([]entity.SubscriptionPlan, error) {
			return []entity.SubscriptionPlan{{ID: planID, Name: "Silver", PriceMonthly: 499}}, nil
		},
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
			if id != planID {
				return nil, repository.ErrPlanNotFound
			}
			return &entity.SubscriptionPlan{ID: id, Name: "Silver", PriceMonthly: 499}, nil
		},
		update: func(ctx context.Context, id uuid.UUID, patch repository.PlanPatch) (*entity.SubscriptionPlan, error) {
			if id != planID {
				return nil, repository.ErrPlanNotFound
			}
			return &entity.SubscriptionPlan{ID: id, Name: "Silver", PriceMonthly: *patch.PriceMonthly}, nil
		},
		delete: func(ctx context.Context, id uuid.UUID) error {
			if id != planID {
				return repository.ErrPlanNotFound
			}
			return nil
		},
	}
	handler := newSubscriptionsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/plans", nil)
	rec := httptest.NewRecorder()
	_ = handler.List(e.NewContext(req, rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for name, tc := range map[string]struct {
		id       string
		wantCode int
	}{
		"found":     {id: planID.String(), wantCode: http.StatusOK},
		"missing":   {id: uuid.NewString(), wantCode: http.StatusNotFound},
		"malformed": {id: "gold", wantCode: http.StatusBadRequest},
	} {
		t.Run("get "+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/plans/"+tc.id, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			_ = handler.Get(c)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
		})

		t.Run("delete "+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/subscriptions/plans/"+tc.id, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			_ = handler.Delete(c)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}

	for name, tc := range map[string]struct {
		price    float64
		wantCode int
	}{
		"valid price":    {price: 599, wantCode: http.StatusOK},
		"negative price": {price: -1, wantCode: http.StatusBadRequest},
	} {
		t.Run("update "+name, func(t *testing.T) {
			body, _ := json.Marshal(dto.UpdatePlanRequest{PriceMonthly: &tc.price})
			req, rec := jsonRequest(http.MethodPut, "/api/subscriptions/plans/"+planID.String(), body)
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(planID.String())
			_ = handler.Update(c)
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}
