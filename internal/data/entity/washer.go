package entity

import (
	"github.com/google/uuid"
)

// Washer is the provider profile attached 1:1 to a user with role washer.
type Washer struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Rating      float64   `db:"rating"`
	TotalJobs   int       `db:"total_jobs"`
	IsAvailable bool      `db:"is_available"`
	Latitude    *float64  `db:"latitude"`
	Longitude   *float64  `db:"longitude"`
	Services    []string  `db:"services"`
	HourlyRate  float64   `db:"hourly_rate"`
}
