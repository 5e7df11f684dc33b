package jobs

import (
	"context"
	"fmt"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/usecase"

	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// reminderJob notifies customers whose confirmed wash starts in about
// an hour. The window width matches the schedule cadence so each
// booking falls into exactly one tick.
type reminderJob struct {
	repo     *repository.Repository
	notifier usecase.NotificationService
	log      *zap.Logger
}

func newReminderJob(repo *repository.Repository, notifier usecase.NotificationService, log *zap.Logger) *reminderJob {
	return &reminderJob{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("job", "reminder")),
	}
}

func (j *reminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	// Ticks run every 5 minutes; [now+60m, now+65m) windows tile without
	// overlap, so no booking is reminded twice.
	now := time.Now()
	lower := now.Add(60 * time.Minute)
	upper := now.Add(65 * time.Minute)

	upcoming, err := j.repo.Booking.FindScheduledBetween(ctx, entity.BookingStatusConfirmed, lower, upper)
	if err != nil {
		j.log.Error("Failed to load upcoming bookings", zap.Error(err))
		return
	}

	for _, booking := range upcoming {
		j.notifier.Notify(ctx, booking.UserID, "Your wash starts soon",
			fmt.Sprintf("Your car wash at %s is scheduled for %s.", booking.Address, booking.ScheduledTime),
			entity.NotificationInfo)
	}

	if len(upcoming) > 0 {
		j.log.Info("Sent wash reminders", zap.Int("count", len(upcoming)))
	}
}
