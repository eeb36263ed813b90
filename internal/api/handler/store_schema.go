package handler

type createStoreRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=60"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"required,max=400"`
}

type updateStoreRequest struct {
	Name    string `json:"name"    validate:"omitempty,min=2,max=60"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=400"`
}
