package dto

// CreatePlanRequest defines a new subscription plan.
type CreatePlanRequest struct {
	Name         string   `json:"name" validate:"required,max=80"`
	PriceMonthly float64  `json:"price_monthly" validate:"gt=0"`
	Features     []string `json:"features" validate:"dive,max=200"`
	Description  string   `json:"description" validate:"max=1000"`
}

// UpdatePlanRequest patches a subscription plan.
type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	PriceMonthly *float64 `json:"price_monthly,omitempty"`
	Features     []string `json:"features,omitempty" validate:"omitempty,dive,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}
