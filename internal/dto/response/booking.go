package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type LocationResponse struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type BookingResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	WasherID      *string              `json:"washer_id,omitempty"`
	PlanID        string               `json:"plan_id"`
	PlanName      string               `json:"plan_name,omitempty"`
	Status        entity.BookingStatus `json:"status"`
	ScheduledDate string               `json:"scheduled_date"`
	ScheduledTime string               `json:"scheduled_time"`
	Location      LocationResponse     `json:"location"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	Notes         *string              `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// BookingToResponse converts the entity; plan may be nil when the
// caller did not resolve it.
func BookingToResponse(booking *entity.Booking, plan *entity.Plan) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		UserID:        booking.UserID.String(),
		PlanID:        booking.PlanID.String(),
		Status:        booking.Status,
		ScheduledDate: booking.ScheduledDate.Format("2006-01-02"),
		ScheduledTime: booking.ScheduledTime,
		Location: LocationResponse{
			Address:   booking.Address,
			Latitude:  booking.Latitude,
			Longitude: booking.Longitude,
		},
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: booking.PaymentStatus,
		Notes:         booking.Notes,
		CreatedAt:     booking.CreatedAt,
		UpdatedAt:     booking.UpdatedAt,
	}

	if booking.WasherID != nil {
		washerID := booking.WasherID.String()
		resp.WasherID = &washerID
	}

	if plan != nil {
		resp.PlanName = plan.Name
	}

	return resp
}
