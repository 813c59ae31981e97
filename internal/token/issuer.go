package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTTL is the lifetime of an access token
	DefaultAccessTTL = 15 * time.Minute
	// DefaultRefreshTTL is the lifetime of a refresh token
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Issuer mints access and refresh tokens through a Codec
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates an issuer. Non-positive TTLs fall back to the defaults.
func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{codec: codec, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL returns the access token lifetime
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// IssueAccess mints an access token for the principal
func (i *Issuer) IssueAccess(userID int64, username string) (string, error) {
	return i.issue(userID, username, KindAccess)
}

// IssueRefresh mints a refresh token for the principal
func (i *Issuer) IssueRefresh(userID int64, username string) (string, error) {
	return i.issue(userID, username, KindRefresh)
}

// NewClaims builds the claim set for a token of the given kind issued now
func (i *Issuer) NewClaims(userID int64, username string, kind Kind) Claims {
	ttl := i.accessTTL
	if kind == KindRefresh {
		ttl = i.refreshTTL
	}

	// NumericDate has second precision; truncate so decoded claims compare equal
	now := i.codec.Now().Truncate(time.Second)
	return Claims{
		UserID:   userID,
		Username: username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func (i *Issuer) issue(userID int64, username string, kind Kind) (string, error) {
	claims := i.NewClaims(userID, username, kind)
	signed, err := i.codec.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("issue %s token: %w", kind, err)
	}
	return signed, nil
}
