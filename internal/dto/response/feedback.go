package response

import (
	"time"

	"carwash-booking/internal/data/entity"
)

type FeedbackResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	WasherID  string    `json:"washer_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FeedbackToResponse(f *entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID.String(),
		BookingID: f.BookingID.String(),
		UserID:    f.UserID.String(),
		WasherID:  f.WasherID.String(),
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}
