package dto

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed JWT for an authenticated member.
type LoginResponse struct {
	Token string `json:"token"`
}
