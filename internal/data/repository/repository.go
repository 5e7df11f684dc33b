package repository

import (
	"carwash-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Washer       WasherRepository
	Plan         PlanRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Notification NotificationRepository
	Feedback     FeedbackRepository
	Stats        StatsRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Washer:       NewWasherRepository(db, log),
		Plan:         NewPlanRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Feedback:     NewFeedbackRepository(db, log),
		Stats:        NewStatsRepository(db, log),
	}
}
