package request

type CreateFeedbackRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Rating    int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
