package models

import (
	"time"

	"newsblog/internal/database"
)

// BaseResponse represents the base API response structure
type BaseResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp" example:"1640995200"`
	RequestID string      `json:"request_id,omitempty" example:"3f1c..."`
}

// ErrorInfo represents error information
type ErrorInfo struct {
	Code    string            `json:"code" example:"INVALID_REQUEST"`
	Message string            `json:"message" example:"Invalid request parameters"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// UserResponse represents user information
type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"Jane Reader"`
	Email     string `json:"email" example:"reader@example.com"`
	CreatedAt int64  `json:"created_at" example:"1640995200"`
}

// NewUserResponse converts a stored user, dropping the password hash
func NewUserResponse(u *database.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Unix(),
	}
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Success      bool          `json:"success" example:"true"`
	AccessToken  string        `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string        `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string        `json:"token_type" example:"bearer"`
	ExpiresIn    int64         `json:"expires_in" example:"900"`
	User         *UserResponse `json:"user"`
}

// RefreshResponse is returned by refresh
type RefreshResponse struct {
	Success     bool   `json:"success" example:"true"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"900"`
}

// LogoutResponse is returned by logout
type LogoutResponse struct {
	Success bool `json:"success" example:"true"`
}

// MeResponse describes the identity bound to the current access token
type MeResponse struct {
	UserID   int64         `json:"user_id" example:"1"`
	Username string        `json:"username" example:"Jane Reader"`
	User     *UserResponse `json:"user,omitempty"`
}

// SessionsResponse reports how many refresh tokens a user holds
type SessionsResponse struct {
	Active   int `json:"active" example:"2"`
	Capacity int `json:"capacity" example:"5"`
}

// AuditLogResponse represents audit log entry
type AuditLogResponse struct {
	ID        int64  `json:"id" example:"12345"`
	Action    string `json:"action" example:"login"`
	Details   string `json:"details,omitempty"`
	IPAddress string `json:"ip_address,omitempty" example:"192.168.1.100"`
	Timestamp int64  `json:"timestamp" example:"1640995200"`
}

// NewAuditLogResponses converts stored audit entries
func NewAuditLogResponses(logs []database.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogResponse{
			ID:        l.ID,
			Action:    l.Action,
			Details:   l.Details,
			IPAddress: l.IPAddress,
			Timestamp: l.CreatedAt.Unix(),
		})
	}
	return out
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp int64             `json:"timestamp" example:"1640995200"`
	Version   string            `json:"version" example:"1.0.0"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Success wraps data in the standard envelope
func Success(message string, data interface{}, requestID string) BaseResponse {
	return BaseResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Unix(),
		RequestID: requestID,
	}
}
