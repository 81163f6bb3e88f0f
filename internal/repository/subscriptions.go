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
)

var (
	ErrPlanNotFound      = errors.New("subscription plan not found")
	ErrPlanNameDuplicate = errors.New("subscription plan name already exists")
)

// SubscriptionPlansRepository describes persistence operations for subscription plans.
type SubscriptionPlansRepository interface {
	List(ctx context.Context) ([]entity.SubscriptionPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error)
	Create(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error)
	Update(ctx context.Context, id uuid.UUID, patch PlanPatch) (*entity.SubscriptionPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlanPatch lists the plan columns an update may touch.
type PlanPatch struct {
	Name         *string
	PriceMonthly *float64
	Features     []string
	Description  *string
}

const planColumns = `id, name, price_monthly, features, description, created_at, updated_at`

// PGXSubscriptionPlansRepository implements SubscriptionPlansRepository using pgx.
type PGXSubscriptionPlansRepository struct {
	pool pgxPool
}

// NewPGXSubscriptionPlansRepository wires a pgx backed repository.
func NewPGXSubscriptionPlansRepository(pool *pgxpool.Pool) *PGXSubscriptionPlansRepository {
	return &PGXSubscriptionPlansRepository{pool: pool}
}

// List returns plans from cheapest to most expensive.
func (r *PGXSubscriptionPlansRepository) List(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+planColumns+` FROM subscription_plans ORDER BY price_monthly ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := make([]entity.SubscriptionPlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return plans, nil
}

// FindByID retrieves a plan by identifier.
func (r *PGXSubscriptionPlansRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionPlan, error) {
	plan, err := scanPlan(r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM subscription_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("query plan by id: %w", err)
	}
	return plan, nil
}

// Create inserts a plan. Plan names are unique.
func (r *PGXSubscriptionPlansRepository) Create(ctx context.Context, plan *entity.SubscriptionPlan) (*entity.SubscriptionPlan, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO subscription_plans (name, price_monthly, features, description)
        VALUES ($1, $2, $3, $4)
        RETURNING `+planColumns,
		plan.Name, plan.PriceMonthly, stringSliceOrEmpty(plan.Features), plan.Description)

	stored, err := scanPlan(row)
	if err != nil {
		if isUniqueViolation(err, "subscription_plans_name_key") {
			return nil, fmt.Errorf("%w: %v", ErrPlanNameDuplicate, err)
		}
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return stored, nil
}

// Update patches plan attributes.
func (r *PGXSubscriptionPlansRepository) Update(ctx context.Context, id uuid.UUID, patch PlanPatch) (*entity.SubscriptionPlan, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	idx := 1

	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", idx))
		args = append(args, *patch.Name)
		idx++
	}
	if patch.PriceMonthly != nil {
		setClauses = append(setClauses, fmt.Sprintf("price_monthly = $%d", idx))
		args = append(args, *patch.PriceMonthly)
		idx++
	}
	if patch.Features != nil {
		setClauses = append(setClauses, fmt.Sprintf("features = $%d", idx))
		args = append(args, patch.Features)
		idx++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", idx))
		args = append(args, *patch.Description)
		idx++
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE subscription_plans SET %s WHERE id = $%d RETURNING %s`, strings.Join(setClauses, ", "), idx, planColumns)

	plan, err := scanPlan(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		if isUniqueViolation(err, "subscription_plans_name_key") {
			return nil, fmt.Errorf("%w: %v", ErrPlanNameDuplicate, err)
		}
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return plan, nil
}

// Delete removes a plan by id.
func (r *PGXSubscriptionPlansRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM subscription_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func scanPlan(row scanner) (*entity.SubscriptionPlan, error) {
	var plan entity.SubscriptionPlan
	if err := row.Scan(&plan.ID, &plan.Name, &plan.PriceMonthly, &plan.Features, &plan.Description, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		return nil, err
	}
	plan.Features = stringSliceOrEmpty(plan.Features)
	return &plan, nil
}
