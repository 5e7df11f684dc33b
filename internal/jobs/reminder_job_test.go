package jobs

import (
	"context"
	"testing"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type windowCapturingBookingRepo struct {
	repository.BookingRepository

	start, end time.Time
	upcoming   []*entity.Booking
}

func (f *windowCapturingBookingRepo) FindScheduledBetween(ctx context.Context, status entity.BookingStatus, start, end time.Time) ([]*entity.Booking, error) {
	f.start = start
	f.end = end
	return f.upcoming, nil
}

type capturingNotifier struct {
	usecase.NotificationService

	notified []uuid.UUID
}

func (f *capturingNotifier) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ entity.NotificationType) {
	f.notified = append(f.notified, userID)
}

func TestReminderWindowTilesWithCadence(t *testing.T) {
	userID := uuid.New()
	bookings := &windowCapturingBookingRepo{
		upcoming: []*entity.Booking{{
			Base:          entity.Base{ID: uuid.New()},
			UserID:        userID,
			Status:        entity.BookingStatusConfirmed,
			ScheduledTime: "10:00",
			Address:       "12 Elm Street",
		}},
	}
	notifier := &capturingNotifier{}

	job := newReminderJob(&repository.Repository{Booking: bookings}, notifier, zap.NewNop())
	job.Run()

	// Ticks come every 5 minutes; a wider half-open window would put a
	// booking into two consecutive ticks and remind twice.
	if got := bookings.end.Sub(bookings.start); got != 5*time.Minute {
		t.Errorf("window width = %v, want 5m to match the tick cadence", got)
	}
	if until := bookings.start.Sub(time.Now()); until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("window starts %v from now, want about an hour", until)
	}

	if len(notifier.notified) != 1 || notifier.notified[0] != userID {
		t.Errorf("notified = %v, want exactly one reminder for %s", notifier.notified, userID)
	}
}
