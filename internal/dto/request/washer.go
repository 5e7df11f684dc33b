package request

type UpdateWasherRequest struct {
	IsAvailable *bool    `json:"is_available,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Services    []string `json:"services,omitempty" validate:"omitempty,dive,min=1"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
}
