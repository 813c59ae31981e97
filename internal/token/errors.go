package token

import "errors"

var (
	// ErrMalformed is returned when a token cannot be split or decoded
	ErrMalformed = errors.New("token malformed")
	// ErrBadSignature is returned when the signature does not verify
	ErrBadSignature = errors.New("token signature invalid")
	// ErrExpired is returned when the token is at or past its expiry
	ErrExpired = errors.New("token expired")
)
