package dto

// CreateUserRequest is used by administrators to create new users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=user broker admin"`
	Number   string `json:"number"`
}

// UpdateUserRequest captures administrator-triggered partial updates.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user broker admin"`
}

// UserResponse represents user data returned to clients.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Profession string `json:"profession,omitempty"`
	Number     string `json:"number,omitempty"`
	Location   string `json:"location,omitempty"`
	Photo      string `json:"photo,omitempty"`
}
