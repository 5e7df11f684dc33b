package usecase

import (
	"context"
	"fmt"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WasherService interface {
	GetWasher(ctx context.Context, washerID string) (*response.WasherResponse, error)
	ListWashers(ctx context.Context, req *request.PaginatedRequest) ([]response.WasherResponse, int64, error)
	ListAvailableWashers(ctx context.Context) ([]response.WasherResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateWasherRequest) (*response.WasherResponse, error)
}

type washerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWasherService(repo *repository.Repository, log *zap.Logger) WasherService {
	return &washerService{
		repo: repo,
		log:  log.With(zap.String("service", "washer")),
	}
}

func (s *washerService) GetWasher(ctx context.Context, washerID string) (*response.WasherResponse, error) {
	id, err := uuid.Parse(washerID)
	if err != nil {
		return nil, fmt.Errorf("invalid washer ID format %s: %w", washerID, err)
	}

	washer, err := s.repo.Washer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load washer %s: %w", washerID, err)
	}
	if washer == nil {
		return nil, fmt.Errorf("washer %s: %w", washerID, ErrWasherNotFound)
	}

	user, _ := s.repo.User.FindByID(ctx, washer.UserID)
	resp := response.WasherToResponse(washer, user)
	return &resp, nil
}

func (s *washerService) ListWashers(ctx context.Context, req *request.PaginatedRequest) ([]response.WasherResponse, int64, error) {
	washers, err := s.repo.Washer.FindAll(ctx, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list washers: %w", err)
	}

	total, err := s.repo.Washer.CountAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count washers: %w", err)
	}

	return s.toResponses(ctx, washers), total, nil
}

func (s *washerService) ListAvailableWashers(ctx context.Context) ([]response.WasherResponse, error) {
	washers, err := s.repo.Washer.FindAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available washers: %w", err)
	}
	return s.toResponses(ctx, washers), nil
}

func (s *washerService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateWasherRequest) (*response.WasherResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	washer, err := s.repo.Washer.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load washer profile: %w", err)
	}
	if washer == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrWasherNotFound)
	}

	if req.IsAvailable != nil {
		washer.IsAvailable = *req.IsAvailable
	}
	if req.Latitude != nil {
		washer.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		washer.Longitude = req.Longitude
	}
	if req.Services != nil {
		washer.Services = req.Services
	}
	if req.HourlyRate != nil {
		washer.HourlyRate = *req.HourlyRate
	}

	if err := s.repo.Washer.Update(ctx, washer); err != nil {
		s.log.Error("Failed to update washer profile",
			zap.Error(err), zap.String("washer_id", washer.ID.String()))
		return nil, fmt.Errorf("update washer %s: %w", washer.ID.String(), err)
	}

	user, _ := s.repo.User.FindByID(ctx, washer.UserID)
	resp := response.WasherToResponse(washer, user)
	return &resp, nil
}

func (s *washerService) toResponses(ctx context.Context, washers []*entity.Washer) []response.WasherResponse {
	responses := make([]response.WasherResponse, len(washers))
	for i, washer := range washers {
		user, _ := s.repo.User.FindByID(ctx, washer.UserID)
		responses[i] = response.WasherToResponse(washer, user)
	}
	return responses
}
