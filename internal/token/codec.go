// Package token encodes, verifies and mints the signed bearer tokens used by
// the blog API. Tokens are HS256 JWTs signed with a single process-wide secret.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Clock returns the current time; swapped out in tests
type Clock func() time.Time

// Codec signs and verifies tokens with a shared secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	now    Clock
	parser *jwt.Parser
}

// Option configures a Codec
type Option func(*Codec)

// WithClock overrides the time source used for expiry checks
func WithClock(now Clock) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec creates a codec bound to secret
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// Now returns the codec's notion of the current time
func (c *Codec) Now() time.Time {
	return c.now()
}

// Encode serializes and signs claims
func (c *Codec) Encode(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of tokenString and returns its claims.
// The kind is returned as-is; callers decide which kinds they accept.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := c.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return claims, nil
}

// classify maps jwt library errors onto the package's error kinds
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
}
