package dto

// CreateRoomRequest captures a new room request. Name, number and photo default
// to the requester's profile when omitted.
type CreateRoomRequest struct {
	Name     string  `json:"name" validate:"max=120"`
	Number   string  `json:"number"`
	City     string  `json:"city" validate:"max=100"`
	Area     string  `json:"area" validate:"max=100"`
	Location string  `json:"location" validate:"required,max=300"`
	Budget   float64 `json:"budget" validate:"gt=0"`
	Gender   string  `json:"gender"`
	Photo    string  `json:"photo" validate:"omitempty,url"`
}
