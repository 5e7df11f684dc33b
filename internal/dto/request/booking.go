package request

// BookingLocation carries the service address; coordinates are optional.
type BookingLocation struct {
	Address   string   `json:"address" validate:"required,min=5"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// CreateBookingRequest deliberately has no amount field: the total is
// always derived from the plan's price server-side.
type CreateBookingRequest struct {
	PlanID        string          `json:"plan_id" validate:"required,uuid4"`
	ScheduledDate string          `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime string          `json:"scheduled_time" validate:"required,datetime=15:04"`
	Location      BookingLocation `json:"location" validate:"required"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in-progress completed cancelled"`
}
