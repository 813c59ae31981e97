package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"newsblog/internal/database"
)

// UserStore is the principal lookup the service depends on
type UserStore interface {
	Create(ctx context.Context, user *database.User) error
	GetByEmail(ctx context.Context, email string) (*database.User, error)
	GetByID(ctx context.Context, id int64) (*database.User, error)
}

// PasswordHasher hashes new passwords and verifies stored ones
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// CredentialChecker resolves an email and password to a principal or
// ErrInvalidCredentials
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, email, password string) (*database.User, error)
}

type passwordChecker struct {
	users  UserStore
	hasher PasswordHasher

	dummyOnce sync.Once
	dummy     string
}

// NewPasswordChecker checks credentials against stored argon2id hashes
func NewPasswordChecker(users UserStore, hasher PasswordHasher) CredentialChecker {
	return &passwordChecker{users: users, hasher: hasher}
}

func (p *passwordChecker) CheckCredentials(ctx context.Context, email, password string) (*database.User, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// spend the same hashing work as a wrong password
			_, _ = p.hasher.Verify(password, p.dummyHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := p.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// dummyHash is a real hash of a throwaway password, made with the same
// parameters as stored hashes
func (p *passwordChecker) dummyHash() string {
	p.dummyOnce.Do(func() {
		p.dummy, _ = p.hasher.Hash("newsblog-unknown-account")
	})
	return p.dummy
}
