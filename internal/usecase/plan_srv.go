package usecase

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanService interface {
	ListPlans(ctx context.Context) ([]response.PlanResponse, error)
	GetPlan(ctx context.Context, planID string) (*response.PlanResponse, error)
	CreatePlan(ctx context.Context, req *request.CreatePlanRequest) (*response.PlanResponse, error)
	UpdatePlan(ctx context.Context, planID string, req *request.UpdatePlanRequest) (*response.PlanResponse, error)
	DeactivatePlan(ctx context.Context, planID string) error
}

type planService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPlanService(repo *repository.Repository, log *zap.Logger) PlanService {
	return &planService{
		repo: repo,
		log:  log.With(zap.String("service", "plan")),
	}
}

func (s *planService) ListPlans(ctx context.Context) ([]response.PlanResponse, error) {
	plans, err := s.repo.Plan.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	responses := make([]response.PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = response.PlanToResponse(plan)
	}
	return responses, nil
}

func (s *planService) GetPlan(ctx context.Context, planID string) (*response.PlanResponse, error) {
	plan, err := s.findPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) CreatePlan(ctx context.Context, req *request.CreatePlanRequest) (*response.PlanResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	plan := &entity.Plan{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Features:    req.Features,
		IsActive:    true,
	}

	if err := s.repo.Plan.Create(ctx, plan); err != nil {
		s.log.Error("Failed to create plan", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create plan: %w", err)
	}

	s.log.Info("Plan created", zap.String("plan_id", plan.ID.String()), zap.String("name", plan.Name))

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) UpdatePlan(ctx context.Context, planID string, req *request.UpdatePlanRequest) (*response.PlanResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	plan, err := s.findPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Duration != nil {
		plan.Duration = *req.Duration
	}
	if req.Features != nil {
		plan.Features = req.Features
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.Plan.Update(ctx, plan); err != nil {
		s.log.Error("Failed to update plan", zap.Error(err), zap.String("plan_id", planID))
		return nil, fmt.Errorf("update plan %s: %w", planID, err)
	}

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) DeactivatePlan(ctx context.Context, planID string) error {
	plan, err := s.findPlan(ctx, planID)
	if err != nil {
		return err
	}

	if err := s.repo.Plan.Deactivate(ctx, plan.ID); err != nil {
		return fmt.Errorf("deactivate plan %s: %w", planID, err)
	}

	s.log.Info("Plan deactivated", zap.String("plan_id", planID))
	return nil
}

func (s *planService) findPlan(ctx context.Context, planID string) (*entity.Plan, error) {
	id, err := uuid.Parse(planID)
	if err != nil {
		return nil, fmt.Errorf("invalid plan ID format %s: %w", planID, err)
	}

	plan, err := s.repo.Plan.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", planID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrPlanNotFound)
	}

	return plan, nil
}
