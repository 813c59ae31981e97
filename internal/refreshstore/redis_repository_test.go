package refreshstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisRepository(client)
}

func TestRedisRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupRedis(t)

	tokens, err := repo.GetTokens(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	require.NoError(t, repo.SaveTokens(ctx, 1, []string{"t1", "t2"}))

	tokens, err = repo.GetTokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, tokens)

	stored, err := mr.List("newsblog:refresh:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, stored)

	require.NoError(t, repo.SaveTokens(ctx, 1, []string{"t2", "t3"}))
	tokens, err = repo.GetTokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3"}, tokens)
}

func TestRedisRepository_EmptySaveDeletesKey(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupRedis(t)

	require.NoError(t, repo.SaveTokens(ctx, 5, []string{"t"}))
	require.True(t, mr.Exists("newsblog:refresh:5"))

	require.NoError(t, repo.SaveTokens(ctx, 5, nil))
	assert.False(t, mr.Exists("newsblog:refresh:5"))
}

func TestRedisRepository_StoreEvictsOldest(t *testing.T) {
	ctx := context.Background()
	_, repo := setupRedis(t)
	store := NewStore(repo, 2)

	require.NoError(t, store.Add(ctx, 1, "a"))
	require.NoError(t, store.Add(ctx, 1, "b"))
	require.NoError(t, store.Add(ctx, 1, "c"))

	removed, err := store.Remove(ctx, 1, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.Remove(ctx, 1, "b")
	require.NoError(t, err)
	assert.True(t, removed)

	tokens, err := store.Tokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, tokens)
}

func TestRedisRepository_ConnectionError(t *testing.T) {
	mr, repo := setupRedis(t)
	mr.Close()

	_, err := repo.GetTokens(context.Background(), 1)
	assert.Error(t, err)
	assert.Error(t, repo.SaveTokens(context.Background(), 1, []string{"x"}))
}
