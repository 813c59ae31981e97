package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind tags a token as an access or a refresh token
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the payload carried inside every token.
// The json names match the tokens already handed out by the blog API.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Kind     Kind   `json:"type"`
	jwt.RegisteredClaims
}

// IssuedAtTime returns iat as a time.Time (zero if unset)
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns exp as a time.Time (zero if unset)
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
