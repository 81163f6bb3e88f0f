package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/dto"
	"github.com/octobees/roomshare/api/internal/service"
)

// SubscriptionsHandler exposes subscription plan endpoints.
type SubscriptionsHandler struct {
	plans *service.SubscriptionsService
}

// NewSubscriptionsHandler constructs a handler instance.
func NewSubscriptionsHandler(plans *service.SubscriptionsService) *SubscriptionsHandler {
	return &SubscriptionsHandler{plans: plans}
}

// List handles GET /api/subscriptions/plans.
func (h *SubscriptionsHandler) List(c echo.Context) error {
	plans, err := h.plans.ListPlans(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to fetch plans")
	}
	return Success(c, http.StatusOK, "plans retrieved", plans)
}

// Get handles GET /api/subscriptions/plans/:id.
func (h *SubscriptionsHandler) Get(c echo.Context) error {
	plan, err := h.plans.GetPlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "failed to fetch plan")
	}
	return Success(c, http.StatusOK, "plan retrieved", plan)
}

// Create handles POST /api/subscriptions/plans.
func (h *SubscriptionsHandler) Create(c echo.Context) error {
	var req dto.CreatePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	plan, err := h.plans.CreatePlan(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "failed to create plan")
	}
	return Success(c, http.StatusCreated, "plan created", plan)
}

// Update handles PUT /api/subscriptions/plans/:id.
func (h *SubscriptionsHandler) Update(c echo.Context) error {
	var req dto.UpdatePlanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, "invalid payload")
	}

	plan, err := h.plans.UpdatePlan(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err, "failed to update plan")
	}
	return Success(c, http.StatusOK, "plan updated", plan)
}

// Delete handles DELETE /api/subscriptions/plans/:id.
func (h *SubscriptionsHandler) Delete(c echo.Context) error {
	if err := h.plans.DeletePlan(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err, "failed to delete plan")
	}
	return Success(c, http.StatusOK, "plan deleted", nil)
}
