package auth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"newsblog/internal/credentials"
	"newsblog/internal/database"
)

type stubUsers struct {
	user *database.User
	err  error
}

func (s stubUsers) Create(context.Context, *database.User) error { return nil }

func (s stubUsers) GetByEmail(context.Context, string) (*database.User, error) {
	return s.user, s.err
}

func (s stubUsers) GetByID(context.Context, int64) (*database.User, error) {
	return s.user, s.err
}

type stubHasher struct {
	ok  bool
	err error
}

func (h stubHasher) Hash(string) (string, error) { return "hash", nil }

func (h stubHasher) Verify(string, string) (bool, error) { return h.ok, h.err }

func TestPasswordChecker(t *testing.T) {
	user := &database.User{ID: 1, Email: "a@example.com", PasswordHash: "hash"}
	dbErr := errors.New("db down")
	hashErr := errors.New("bad hash")

	tests := []struct {
		name    string
		users   stubUsers
		hasher  stubHasher
		wantErr error
	}{
		{"match", stubUsers{user: user}, stubHasher{ok: true}, nil},
		{"unknown email", stubUsers{err: database.ErrNotFound}, stubHasher{ok: true}, ErrInvalidCredentials},
		{"wrong password", stubUsers{user: user}, stubHasher{ok: false}, ErrInvalidCredentials},
		{"lookup failure", stubUsers{err: dbErr}, stubHasher{}, dbErr},
		{"corrupt hash", stubUsers{user: user}, stubHasher{err: hashErr}, hashErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPasswordChecker(tt.users, tt.hasher).CheckCredentials(context.Background(), "a@example.com", "pw")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, user, got)
		})
	}
}

type countingHasher struct {
	PasswordHasher
	hashes   atomic.Int32
	verifies atomic.Int32
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashes.Add(1)
	return h.PasswordHasher.Hash(password)
}

func (h *countingHasher) Verify(password, encoded string) (bool, error) {
	h.verifies.Add(1)
	return h.PasswordHasher.Verify(password, encoded)
}

func TestPasswordChecker_UnknownEmailStillVerifies(t *testing.T) {
	hasher := &countingHasher{PasswordHasher: credentials.NewHasher(credentials.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1,
	})}
	checker := NewPasswordChecker(stubUsers{err: database.ErrNotFound}, hasher)

	for i := 0; i < 3; i++ {
		got, err := checker.CheckCredentials(context.Background(), "nobody@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, got)
	}

	assert.Equal(t, int32(3), hasher.verifies.Load(), "every miss pays for a verify")
	assert.Equal(t, int32(1), hasher.hashes.Load(), "the placeholder hash is made once")
}
