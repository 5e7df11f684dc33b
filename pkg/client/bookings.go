package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Booking statuses as the API reports them.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// transitions mirrors the server's status machine so obviously illegal
// moves are refused locally.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func isTransitionMessage(message string) bool {
	return strings.Contains(message, "invalid status transition")
}

// Booking is the API's view of a booking.
type Booking struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	WasherID      *string   `json:"washer_id,omitempty"`
	PlanID        string    `json:"plan_id"`
	PlanName      string    `json:"plan_name,omitempty"`
	Status        string    `json:"status"`
	ScheduledDate string    `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	Location      Location  `json:"location"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentStatus string    `json:"payment_status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Location struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// BookingDraft is the payload for creating a booking. The total is
// computed server-side from the plan, so there is no amount field.
type BookingDraft struct {
	PlanID        string   `json:"plan_id"`
	ScheduledDate string   `json:"scheduled_date"`
	ScheduledTime string   `json:"scheduled_time"`
	Location      Location `json:"location"`
	Notes         *string  `json:"notes,omitempty"`
}

// validate catches broken drafts without a round trip.
func (d BookingDraft) validate() *Error {
	fields := make(map[string]string)

	if d.PlanID == "" {
		fields["plan_id"] = "plan_id is required"
	}
	if _, err := time.Parse("2006-01-02", d.ScheduledDate); err != nil {
		fields["scheduled_date"] = "scheduled_date must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04", d.ScheduledTime); err != nil {
		fields["scheduled_time"] = "scheduled_time must be HH:MM"
	}
	if len(d.Location.Address) < 5 {
		fields["location.address"] = "address must be at least 5 characters"
	}

	if len(fields) > 0 {
		return &Error{Kind: KindValidation, Message: "invalid booking draft", Fields: fields}
	}
	return nil
}

// BookingPage is one page of a booking listing.
type BookingPage struct {
	Bookings   []Booking
	Pagination Pagination
}

// clone keeps callers from mutating the cached page through the
// returned slice.
func (p *BookingPage) clone() *BookingPage {
	copied := *p
	copied.Bookings = append([]Booking(nil), p.Bookings...)
	return &copied
}

// Scope selects whose bookings a listing covers.
type Scope struct {
	kind string
	id   string
}

// ScopeAll lists every booking; admin only.
func ScopeAll() Scope { return Scope{kind: "all"} }

// ScopeUser lists a customer's bookings.
func ScopeUser(userID string) Scope { return Scope{kind: "user", id: userID} }

// ScopeWasher lists a washer's assigned bookings.
func ScopeWasher(washerID string) Scope { return Scope{kind: "washer", id: washerID} }

func (s Scope) path() string {
	switch s.kind {
	case "user":
		return "/api/users/" + s.id + "/bookings"
	case "washer":
		return "/api/washers/" + s.id + "/bookings"
	default:
		return "/api/bookings"
	}
}

func (s Scope) cacheKey(page, limit int) string {
	return fmt.Sprintf("bookings:%s:%s:%d:%d", s.kind, s.id, page, limit)
}

// ListBookings fetches one page for the scope. Pages are cached until
// the TTL expires or a mutation through this client invalidates them.
func (c *Client) ListBookings(ctx context.Context, scope Scope, page, limit int) (*BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	key := scope.cacheKey(page, limit)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*BookingPage).clone(), nil
	}

	var bookings []Booking
	path := fmt.Sprintf("%s?page=%d&limit=%d", scope.path(), page, limit)
	pagination, err := c.do(ctx, http.MethodGet, path, nil, &bookings)
	if err != nil {
		return nil, err
	}

	result := &BookingPage{Bookings: bookings}
	if pagination != nil {
		result.Pagination = *pagination
	}

	for _, b := range bookings {
		c.rememberStatus(b.ID, b.Status)
	}
	c.cache.Set(key, result, gocache.DefaultExpiration)

	return result.clone(), nil
}

// GetBooking fetches one booking by ID.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var booking Booking
	if _, err := c.do(ctx, http.MethodGet, "/api/bookings/"+bookingID, nil, &booking); err != nil {
		return nil, err
	}

	c.rememberStatus(booking.ID, booking.Status)
	return &booking, nil
}

// CreateBooking submits a draft. Identical drafts submitted
// concurrently (a double-clicked submit button) collapse into a single
// request.
func (c *Client) CreateBooking(ctx context.Context, draft BookingDraft) (*Booking, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("create:%s:%s:%s", draft.PlanID, draft.ScheduledDate, draft.ScheduledTime)
	result, err, _ := c.group.Do(key, func() (any, error) {
		var booking Booking
		if _, err := c.do(ctx, http.MethodPost, "/api/bookings", draft, &booking); err != nil {
			return nil, err
		}
		return &booking, nil
	})
	if err != nil {
		return nil, err
	}

	booking := result.(*Booking)
	c.rememberStatus(booking.ID, booking.Status)
	c.invalidateListings()

	return booking, nil
}

// UpdateBookingStatus drives the booking's status machine. Transitions
// the local replica already knows are illegal fail without contacting
// the backend; the server still arbitrates races, surfacing them as
// KindConflict.
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID, status string) (*Booking, error) {
	if last, ok := c.lastKnownStatus(bookingID); ok && !canTransition(last, status) {
		return nil, &Error{
			Kind:    KindInvalidTransition,
			Message: fmt.Sprintf("invalid status transition %s -> %s", last, status),
		}
	}

	// Repeated submissions of the same transition share one request.
	key := fmt.Sprintf("status:%s:%s", bookingID, status)
	result, err, _ := c.group.Do(key, func() (any, error) {
		var booking Booking
		body := map[string]string{"status": status}
		if _, err := c.do(ctx, http.MethodPut, "/api/bookings/"+bookingID+"/status", body, &booking); err != nil {
			return nil, err
		}
		return &booking, nil
	})
	if err != nil {
		// A conflict means our replica was stale; drop the entry so the
		// next attempt consults the server.
		if IsConflict(err) {
			c.forgetStatus(bookingID)
			c.invalidateListings()
		}
		return nil, err
	}

	booking := result.(*Booking)
	c.rememberStatus(booking.ID, booking.Status)
	c.invalidateListings()

	return booking, nil
}

// CancelBooking cancels via the dedicated endpoint.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*Booking, error) {
	if last, ok := c.lastKnownStatus(bookingID); ok && !canTransition(last, StatusCancelled) {
		return nil, &Error{
			Kind:    KindInvalidTransition,
			Message: fmt.Sprintf("invalid status transition %s -> %s", last, StatusCancelled),
		}
	}

	// Shares the status key scheme so a double-clicked cancel, or a
	// cancel racing an explicit status=cancelled call, collapses into
	// one request.
	key := fmt.Sprintf("status:%s:%s", bookingID, StatusCancelled)
	result, err, _ := c.group.Do(key, func() (any, error) {
		var booking Booking
		if _, err := c.do(ctx, http.MethodPut, "/api/bookings/"+bookingID+"/cancel", nil, &booking); err != nil {
			return nil, err
		}
		return &booking, nil
	})
	if err != nil {
		if IsConflict(err) {
			c.forgetStatus(bookingID)
			c.invalidateListings()
		}
		return nil, err
	}

	booking := result.(*Booking)
	c.rememberStatus(booking.ID, booking.Status)
	c.invalidateListings()

	return booking, nil
}

func (c *Client) forgetStatus(bookingID string) {
	c.mu.Lock()
	delete(c.statuses, bookingID)
	c.mu.Unlock()
}

// invalidateListings drops every cached booking page. Mutations can
// move a booking between scopes (a washer accepting claims it), so all
// scopes are dropped rather than guessing which ones changed.
func (c *Client) invalidateListings() {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, "bookings:") {
			c.cache.Delete(key)
		}
	}
}
