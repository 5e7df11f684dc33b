package usecase

import (
	"context"
	"fmt"

	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatsService interface {
	AdminStats(ctx context.Context) (*response.AdminStatsResponse, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*response.UserStatsResponse, error)
	WasherStats(ctx context.Context, userID uuid.UUID) (*response.WasherStatsResponse, error)
}

type statsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStatsService(repo *repository.Repository, log *zap.Logger) StatsService {
	return &statsService{
		repo: repo,
		log:  log.With(zap.String("service", "stats")),
	}
}

func (s *statsService) AdminStats(ctx context.Context) (*response.AdminStatsResponse, error) {
	stats, err := s.repo.Stats.AdminStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin stats: %w", err)
	}

	resp := response.AdminStatsToResponse(stats)
	return &resp, nil
}

func (s *statsService) UserStats(ctx context.Context, userID uuid.UUID) (*response.UserStatsResponse, error) {
	stats, err := s.repo.Stats.UserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load stats for user %s: %w", userID.String(), err)
	}

	resp := response.UserStatsToResponse(stats)
	return &resp, nil
}

// WasherStats resolves the washer profile from the authenticated user.
func (s *statsService) WasherStats(ctx context.Context, userID uuid.UUID) (*response.WasherStatsResponse, error) {
	washer, err := s.repo.Washer.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load washer profile: %w", err)
	}
	if washer == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrWasherNotFound)
	}

	stats, err := s.repo.Stats.WasherStats(ctx, washer.ID)
	if err != nil {
		return nil, fmt.Errorf("load stats for washer %s: %w", washer.ID.String(), err)
	}

	resp := response.WasherStatsToResponse(stats)
	return &resp, nil
}
