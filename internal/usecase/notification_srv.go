package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type NotificationService interface {
	// Notify records a notification for the user. Failures are logged,
	// never propagated: a missed notification must not fail the
	// operation that triggered it.
	Notify(ctx context.Context, userID uuid.UUID, title, message string, typ entity.NotificationType)
	ListUserNotifications(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) ([]response.NotificationResponse, int64, error)
	MarkAsRead(ctx context.Context, notificationID string, userID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ entity.NotificationType) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		s.log.Warn("Failed to store notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("title", title),
		)
	}
}

func (s *notificationService) ListUserNotifications(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) ([]response.NotificationResponse, int64, error) {
	notifications, err := s.repo.Notification.FindByUserID(ctx, userID, req.PageSize(), req.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications for user %s: %w", userID.String(), err)
	}

	total, err := s.repo.Notification.CountByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications for user %s: %w", userID.String(), err)
	}

	responses := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = response.NotificationToResponse(n)
	}
	return responses, total, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID string, userID uuid.UUID) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification ID format %s: %w", notificationID, err)
	}

	if err := s.repo.Notification.MarkAsRead(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("notification %s: %w", notificationID, ErrNotificationNotFound)
		}
		return fmt.Errorf("mark notification %s read: %w", notificationID, err)
	}
	return nil
}
