package request

type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=300"`
}
