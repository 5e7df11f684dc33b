package usecase

import (
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/events"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Washer       WasherService
	Plan         PlanService
	Booking      BookingService
	Payment      PaymentService
	Notification NotificationService
	Feedback     FeedbackService
	Stats        StatsService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher events.Publisher, logger *zap.Logger) *Service {
	notification := NewNotificationService(repo, logger)

	return &Service{
		Auth:         NewAuthService(repo, config, logger),
		User:         NewUserService(repo, logger),
		Washer:       NewWasherService(repo, logger),
		Plan:         NewPlanService(repo, logger),
		Booking:      NewBookingService(repo, publisher, notification, logger),
		Payment:      NewPaymentService(repo, logger),
		Notification: notification,
		Feedback:     NewFeedbackService(repo, logger),
		Stats:        NewStatsService(repo, logger),
	}
}
