package request

type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}
