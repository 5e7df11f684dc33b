package repository

import (
	"context"
	"fmt"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	FindAllActive(ctx context.Context) ([]*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type planRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlanRepository(db database.PgxIface, log *zap.Logger) PlanRepository {
	return &planRepository{
		db:  db,
		log: log.With(zap.String("repository", "plan")),
	}
}

const planColumns = `id, name, description, price, duration, features, is_active, created_at, updated_at`

func scanPlan(row pgx.Row) (*entity.Plan, error) {
	var plan entity.Plan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.Price,
		&plan.Duration,
		&plan.Features,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.Price,
		plan.Duration,
		plan.Features,
		plan.IsActive,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create plan",
			zap.Error(err),
			zap.String("name", plan.Name),
		)
		return fmt.Errorf("create plan %s: %w", plan.Name, err)
	}

	return nil
}

func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find plan by ID",
			zap.Error(err),
			zap.String("plan_id", id.String()),
		)
		return nil, fmt.Errorf("find plan by ID %s: %w", id.String(), err)
	}

	return plan, nil
}

func (r *planRepository) FindAllActive(ctx context.Context) ([]*entity.Plan, error) {
	query := `
		SELECT ` + planColumns + `
		FROM plans
		WHERE is_active = true
		ORDER BY price
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list active plans", zap.Error(err))
		return nil, fmt.Errorf("list active plans: %w", err)
	}
	defer rows.Close()

	var plans []*entity.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			r.log.Error("Failed to scan plan row", zap.Error(err))
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (r *planRepository) Update(ctx context.Context, plan *entity.Plan) error {
	query := `
		UPDATE plans
		SET name = $2, description = $3, price = $4, duration = $5,
		    features = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.Name,
		plan.Description,
		plan.Price,
		plan.Duration,
		plan.Features,
		plan.IsActive,
		plan.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update plan",
			zap.Error(err),
			zap.String("plan_id", plan.ID.String()),
		)
		return fmt.Errorf("update plan %s: %w", plan.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("plan %s not found", plan.ID.String())
	}

	return nil
}

func (r *planRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE plans SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate plan",
			zap.Error(err),
			zap.String("plan_id", id.String()),
		)
		return fmt.Errorf("deactivate plan %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("plan %s not found", id.String())
	}

	return nil
}
