package refreshstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "newsblog:refresh:"

// RedisRepository keeps each token list in a Redis list keyed by user id
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRepository creates a repository over client
func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client, prefix: redisKeyPrefix}
}

func (r *RedisRepository) key(userID int64) string {
	return fmt.Sprintf("%s%d", r.prefix, userID)
}

// GetTokens returns the user's tokens, oldest first
func (r *RedisRepository) GetTokens(ctx context.Context, userID int64) ([]string, error) {
	tokens, err := r.client.LRange(ctx, r.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	return tokens, nil
}

// SaveTokens replaces the user's token list atomically (MULTI/EXEC)
func (r *RedisRepository) SaveTokens(ctx context.Context, userID int64, tokens []string) error {
	key := r.key(userID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(tokens) > 0 {
			values := make([]interface{}, len(tokens))
			for i, t := range tokens {
				values[i] = t
			}
			pipe.RPush(ctx, key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
