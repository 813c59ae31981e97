package interfaces

import (
	"context"

	"newsblog/internal/auth"
	"newsblog/internal/database"
	"newsblog/internal/token"
)

// AuthServiceInterface is what the auth handlers need from the auth service
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.AccessGrant, error)
	Logout(ctx context.Context, refreshToken string)
	Register(ctx context.Context, name, email, password string) (*auth.TokenPair, error)
	Sessions(ctx context.Context, userID int64) (int, error)
	AuditTrail(ctx context.Context, userID int64, limit, offset int) ([]database.AuditLog, error)
	User(ctx context.Context, userID int64) (*database.User, error)
}

// TokenDecoder verifies a bearer token and returns its claims
type TokenDecoder interface {
	Decode(tokenString string) (*token.Claims, error)
}
