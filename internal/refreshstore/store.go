package refreshstore

import (
	"context"
	"fmt"
)

// Repository persists each principal's refresh token list, oldest first
type Repository interface {
	GetTokens(ctx context.Context, userID int64) ([]string, error)
	SaveTokens(ctx context.Context, userID int64, tokens []string) error
}

// Store applies TokenSet operations to persisted token lists.
// Every call is a read-modify-write under a per-principal lock, so concurrent
// calls for one principal never drop an update and calls for different
// principals never wait on each other.
type Store struct {
	repo     Repository
	capacity int
	locks    *keyedMutex
}

// NewStore creates a store over repo
func NewStore(repo Repository, capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		repo:     repo,
		capacity: capacity,
		locks:    newKeyedMutex(),
	}
}

// Capacity returns the per-principal token limit
func (s *Store) Capacity() int {
	return s.capacity
}

// Add records token for userID, evicting the oldest tokens beyond capacity
func (s *Store) Add(ctx context.Context, userID int64, token string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	set, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	set.Add(token)

	if err := s.repo.SaveTokens(ctx, userID, set.Tokens()); err != nil {
		return fmt.Errorf("failed to save refresh tokens: %w", err)
	}
	return nil
}

// Contains reports whether userID currently holds token
func (s *Store) Contains(ctx context.Context, userID int64, token string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	set, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	return set.Contains(token), nil
}

// Remove drops token from userID's list. Removing an absent token is a no-op.
func (s *Store) Remove(ctx context.Context, userID int64, token string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	set, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}

	if !set.Remove(token) {
		return false, nil
	}

	if err := s.repo.SaveTokens(ctx, userID, set.Tokens()); err != nil {
		return false, fmt.Errorf("failed to save refresh tokens: %w", err)
	}
	return true, nil
}

// Tokens returns userID's tokens, oldest first
func (s *Store) Tokens(ctx context.Context, userID int64) ([]string, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	set, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return set.Tokens(), nil
}

func (s *Store) load(ctx context.Context, userID int64) (*TokenSet, error) {
	tokens, err := s.repo.GetTokens(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh tokens: %w", err)
	}
	return NewTokenSet(tokens, s.capacity), nil
}
