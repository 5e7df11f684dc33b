package entity

import (
	"testing"
	"time"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to in-progress", BookingStatusPending, BookingStatusInProgress, false},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, false},
		{"confirmed to in-progress", BookingStatusConfirmed, BookingStatusInProgress, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, false},
		{"confirmed to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"in-progress to completed", BookingStatusInProgress, BookingStatusCompleted, true},
		{"in-progress to cancelled", BookingStatusInProgress, BookingStatusCancelled, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusPending, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"no self transition", BookingStatusPending, BookingStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "in-progress", "completed", "cancelled"} {
		status, err := ParseBookingStatus(valid)
		if err != nil {
			t.Errorf("ParseBookingStatus(%q) returned error: %v", valid, err)
		}
		if string(status) != valid {
			t.Errorf("ParseBookingStatus(%q) = %q", valid, status)
		}
	}

	for _, invalid := range []string{"", "done", "Pending", "in_progress"} {
		if _, err := ParseBookingStatus(invalid); err == nil {
			t.Errorf("ParseBookingStatus(%q) should fail", invalid)
		}
	}
}

func TestTerminal(t *testing.T) {
	if !BookingStatusCompleted.Terminal() || !BookingStatusCancelled.Terminal() {
		t.Error("completed and cancelled should be terminal")
	}
	for _, s := range []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestScheduledAt(t *testing.T) {
	booking := &Booking{
		ScheduledDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "14:30",
	}

	got := booking.ScheduledAt()
	want := time.Date(2026, 9, 12, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ScheduledAt() = %v, want %v", got, want)
	}

	booking.ScheduledTime = "bad"
	if got := booking.ScheduledAt(); !got.Equal(booking.ScheduledDate) {
		t.Errorf("malformed time should fall back to date, got %v", got)
	}
}
