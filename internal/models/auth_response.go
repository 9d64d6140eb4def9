package models

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token  string `json:"token"`
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
