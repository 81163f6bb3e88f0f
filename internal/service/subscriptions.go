package service

import (
	"context"
	"strings"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/entity"
	"github.com/octobees/roomshare/api/internal/repository"
)

// SubscriptionsService manages subscription plans.
type SubscriptionsService struct {
	repo repository.SubscriptionPlansRepository
}

// NewSubscriptionsService builds a SubscriptionsService.
func NewSubscriptionsService(repo repository.SubscriptionPlansRepository) *SubscriptionsService {
	return &SubscriptionsService{repo: repo}
}

// ListPlans returns plans ordered by monthly price.
func (s *SubscriptionsService) ListPlans(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	return s.repo.List(ctx)
}

// GetPlan returns one plan.
func (s *SubscriptionsService) GetPlan(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	planID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, planID)
}

// CreatePlan validates and stores a plan.
func (s *SubscriptionsService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*entity.SubscriptionPlan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ValidationError{Message: "plan name is required"}
	}
	if req.PriceMonthly <= 0 {
		return nil, ValidationError{Message: "price_monthly must be greater than zero"}
	}

	return s.repo.Create(ctx, &entity.SubscriptionPlan{
		Name:         name,
		PriceMonthly: req.PriceMonthly,
		Features:     cleanList(req.Features),
		Description:  strings.TrimSpace(req.Description),
	})
}

// UpdatePlan patches a plan.
func (s *SubscriptionsService) UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*entity.SubscriptionPlan, error) {
	planID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var patch repository.PlanPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ValidationError{Message: "plan name cannot be empty"}
		}
		patch.Name = &name
	}
	if req.PriceMonthly != nil {
		if *req.PriceMonthly <= 0 {
			return nil, ValidationError{Message: "price_monthly must be greater than zero"}
		}
		patch.PriceMonthly = req.PriceMonthly
	}
	if req.Features != nil {
		patch.Features = cleanList(req.Features)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}

	return s.repo.Update(ctx, planID, patch)
}

// DeletePlan removes a plan.
func (s *SubscriptionsService) DeletePlan(ctx context.Context, id string) error {
	planID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, planID)
}
