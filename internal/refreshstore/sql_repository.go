package refreshstore

import (
	"context"
	"database/sql"
	"fmt"

	"newsblog/internal/dbx"
)

// SQLRepository keeps token lists in the refresh_tokens table, one row per
// token, ordered by position.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a repository over db
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// GetTokens returns the user's tokens, oldest first
func (r *SQLRepository) GetTokens(ctx context.Context, userID int64) ([]string, error) {
	query := `
        SELECT token
        FROM refresh_tokens
        WHERE user_id = $1
        ORDER BY position
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tokens, nil
}

// SaveTokens replaces the user's token list in one transaction
func (r *SQLRepository) SaveTokens(ctx context.Context, userID int64, tokens []string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		for position, token := range tokens {
			query := `
                INSERT INTO refresh_tokens (user_id, token, position)
                VALUES ($1, $2, $3)
            `
			if _, err := tx.ExecContext(ctx, query, userID, token, position); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		return nil
	})
}
