package models

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RegisterRequest represents account registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Jane Reader"`
	Email    string `json:"email" binding:"required,email,max=255" example:"reader@example.com"`
	Password string `json:"password" binding:"required,max=128" example:"password123"`
}

// RefreshRequest carries a refresh token for refresh and logout
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LogoutRequest is lenient: an empty or missing token still logs out
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PaginationQuery holds limit/offset query parameters
type PaginationQuery struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=1000"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
