package request

type CreatePlanRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"required,max=500"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Duration    int      `json:"duration" validate:"required,gt=0"`
	Features    []string `json:"features" validate:"omitempty,dive,min=1"`
}

type UpdatePlanRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Duration    *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Features    []string `json:"features,omitempty" validate:"omitempty,dive,min=1"`
	IsActive    *bool    `json:"is_active,omitempty"`
}
