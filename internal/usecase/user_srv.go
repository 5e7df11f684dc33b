package usecase

import (
	"context"
	"fmt"

	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*response.UserResponse, error)
	ListUsers(ctx context.Context, req *request.PaginatedRequest) ([]response.UserResponse, int64, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeactivateUser(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) ([]response.UserResponse, int64, error) {
	users, err := s.repo.User.FindAll(ctx, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	responses := make([]response.UserResponse, len(users))
	for i, user := range users {
		responses[i] = response.UserToResponse(user)
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID.String(), err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrUserNotFound)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update user %s: %w", userID.String(), err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load user %s: %w", userID, err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	if err := s.repo.User.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate user %s: %w", userID, err)
	}

	// Force re-login everywhere.
	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Warn("Failed to revoke sessions for deactivated user",
			zap.Error(err), zap.String("user_id", userID))
	}

	s.log.Info("User deactivated", zap.String("user_id", userID))
	return nil
}
