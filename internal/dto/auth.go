package dto

// LoginRequest captures credential input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user,omitempty"`
}

// RegisterRequest captures self-service registration payloads.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Number     string `json:"number" validate:"required"`
	Role       string `json:"role" validate:"omitempty,oneof=user broker"`
	Profession string `json:"profession" validate:"max=120"`
	Location   string `json:"location" validate:"max=200"`
	Photo      string `json:"photo" validate:"omitempty,url"`
}
