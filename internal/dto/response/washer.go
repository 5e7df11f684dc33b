package response

import (
	"carwash-booking/internal/data/entity"
)

type WasherResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name,omitempty"`
	Rating      float64  `json:"rating"`
	TotalJobs   int      `json:"total_jobs"`
	IsAvailable bool     `json:"is_available"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Services    []string `json:"services"`
	HourlyRate  float64  `json:"hourly_rate"`
}

// WasherToResponse converts the profile; user may be nil when the
// caller did not resolve the owning account.
func WasherToResponse(washer *entity.Washer, user *entity.User) WasherResponse {
	resp := WasherResponse{
		ID:          washer.ID.String(),
		UserID:      washer.UserID.String(),
		Rating:      washer.Rating,
		TotalJobs:   washer.TotalJobs,
		IsAvailable: washer.IsAvailable,
		Latitude:    washer.Latitude,
		Longitude:   washer.Longitude,
		Services:    washer.Services,
		HourlyRate:  washer.HourlyRate,
	}

	if user != nil {
		resp.Name = user.Name
	}

	return resp
}
