package usecase

import "errors"

// Sentinel errors returned by services; the HTTP adaptor maps them to
// status codes with errors.Is.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrWasherNotFound       = errors.New("washer not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrAccessDenied       = errors.New("access denied")

	// ErrInvalidTransition: the requested target status is not reachable
	// from the current one. Caught before any write is dispatched.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrStatusConflict: another actor changed the booking status first.
	ErrStatusConflict = errors.New("booking status changed concurrently")

	ErrFeedbackExists     = errors.New("feedback already submitted for booking")
	ErrFeedbackNotAllowed = errors.New("feedback only allowed for completed bookings")
)
