package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// statusTransitions is the single source of truth for the booking lifecycle.
// Cancellation is only reachable from pending and confirmed; a job that has
// started is run to completion.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	Base
	UserID        uuid.UUID     `db:"user_id"`
	WasherID      *uuid.UUID    `db:"washer_id"`
	PlanID        uuid.UUID     `db:"plan_id"`
	Status        BookingStatus `db:"status"`
	ScheduledDate time.Time     `db:"scheduled_date"`
	ScheduledTime string        `db:"scheduled_time"`
	Address       string        `db:"address"`
	Latitude      *float64      `db:"latitude"`
	Longitude     *float64      `db:"longitude"`
	TotalAmount   float64       `db:"total_amount"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	Notes         *string       `db:"notes"`
}

// ScheduledAt combines the calendar date with the time-of-day string
// (expected "15:04"). A malformed time falls back to start of day.
func (b *Booking) ScheduledAt() time.Time {
	t, err := time.Parse("15:04", b.ScheduledTime)
	if err != nil {
		return b.ScheduledDate
	}
	return time.Date(
		b.ScheduledDate.Year(), b.ScheduledDate.Month(), b.ScheduledDate.Day(),
		t.Hour(), t.Minute(), 0, 0, b.ScheduledDate.Location(),
	)
}
