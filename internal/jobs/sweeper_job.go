package jobs

import (
	"context"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/usecase"

	"go.uber.org/zap"
)

// sweeperJob auto-cancels pending bookings whose scheduled slot has
// passed without any washer accepting them. The conditional update
// means a washer accepting at the same moment wins the race and the
// sweep silently moves on.
type sweeperJob struct {
	repo     *repository.Repository
	notifier usecase.NotificationService
	log      *zap.Logger
}

func newSweeperJob(repo *repository.Repository, notifier usecase.NotificationService, log *zap.Logger) *sweeperJob {
	return &sweeperJob{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("job", "sweeper")),
	}
}

func (j *sweeperJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	stale, err := j.repo.Booking.FindStalePending(ctx, time.Now())
	if err != nil {
		j.log.Error("Failed to load stale pending bookings", zap.Error(err))
		return
	}

	cancelled := 0
	for _, booking := range stale {
		applied, err := j.repo.Booking.UpdateStatusFrom(ctx, booking.ID,
			entity.BookingStatusPending, entity.BookingStatusCancelled, nil)
		if err != nil {
			j.log.Error("Failed to cancel stale booking",
				zap.Error(err), zap.String("booking_id", booking.ID.String()))
			continue
		}
		if !applied {
			continue
		}

		cancelled++
		j.notifier.Notify(ctx, booking.UserID, "Booking expired",
			"No washer accepted your booking before its scheduled time, so it was cancelled.",
			entity.NotificationWarning)
	}

	if cancelled > 0 {
		j.log.Info("Cancelled stale pending bookings", zap.Int("count", cancelled))
	}
}
