package refreshstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepository is an in-memory Repository that records the newest token of every save
type memRepository struct {
	mu      sync.Mutex
	tokens  map[int64][]string
	saves   int
	added   []string
	saveErr error
}

func newMemRepository() *memRepository {
	return &memRepository{tokens: make(map[int64][]string)}
}

func (m *memRepository) GetTokens(_ context.Context, userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens[userID]...), nil
}

func (m *memRepository) SaveTokens(_ context.Context, userID int64, tokens []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	if len(tokens) > 0 {
		m.added = append(m.added, tokens[len(tokens)-1])
	}
	m.tokens[userID] = append([]string(nil), tokens...)
	return nil
}

func TestStore_AddContainsRemove(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	store := NewStore(repo, 5)

	require.NoError(t, store.Add(ctx, 1, "a"))
	require.NoError(t, store.Add(ctx, 1, "b"))

	ok, err := store.Contains(ctx, 1, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Contains(ctx, 2, "a")
	require.NoError(t, err)
	assert.False(t, ok, "tokens are scoped per principal")

	removed, err := store.Remove(ctx, 1, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	tokens, err := store.Tokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, tokens)
}

func TestStore_SixAddsKeepLastFive(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemRepository(), 5)

	for i := 1; i <= 6; i++ {
		require.NoError(t, store.Add(ctx, 9, fmt.Sprintf("t%d", i)))
	}

	tokens, err := store.Tokens(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3", "t4", "t5", "t6"}, tokens)
}

func TestStore_RemoveAbsentDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	store := NewStore(repo, 5)
	require.NoError(t, store.Add(ctx, 1, "a"))

	removed, err := store.Remove(ctx, 1, "unknown")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, repo.saves)

	tokens, err := store.Tokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tokens)
}

func TestStore_SaveErrorPropagates(t *testing.T) {
	repo := newMemRepository()
	repo.saveErr = errors.New("disk full")
	store := NewStore(repo, 5)

	err := store.Add(context.Background(), 1, "a")
	assert.ErrorIs(t, err, repo.saveErr)
}

func TestStore_ConcurrentAddsNeverLoseAnEviction(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()
	store := NewStore(repo, 5)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Add(ctx, 7, fmt.Sprintf("token-%02d", i)))
		}(i)
	}
	wg.Wait()

	tokens, err := store.Tokens(ctx, 7)
	require.NoError(t, err)

	require.Len(t, repo.added, n)
	assert.Equal(t, repo.added[n-5:], tokens)
	assert.Zero(t, store.locks.size())
}

func TestStore_DifferentPrincipalsDoNotShareState(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemRepository(), 5)

	var wg sync.WaitGroup
	for user := int64(1); user <= 4; user++ {
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(user int64, i int) {
				defer wg.Done()
				assert.NoError(t, store.Add(ctx, user, fmt.Sprintf("u%d-%d", user, i)))
			}(user, i)
		}
	}
	wg.Wait()

	for user := int64(1); user <= 4; user++ {
		tokens, err := store.Tokens(ctx, user)
		require.NoError(t, err)
		assert.Len(t, tokens, 5)
		for _, tok := range tokens {
			assert.Contains(t, tok, fmt.Sprintf("u%d-", user))
		}
	}
}
