package adaptor

import (
	"carwash-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Washer       *WasherHandler
	Plan         *PlanHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Notification *NotificationHandler
	Feedback     *FeedbackHandler
	Stats        *StatsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Washer:       NewWasherHandler(service.Washer, log),
		Plan:         NewPlanHandler(service.Plan, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Notification: NewNotificationHandler(service.Notification, log),
		Feedback:     NewFeedbackHandler(service.Feedback, log),
		Stats:        NewStatsHandler(service.Stats, log),
	}
}
