package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"newsblog/internal/database"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and fills in its id and timestamps.
// A taken email yields database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *database.User) error {
	now := time.Now().UTC().Truncate(time.Second)
	user.Email = normalizeEmail(user.Email)

	query := `
        INSERT INTO users (name, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash, now, now).Scan(&user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, database.ErrDuplicate)
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*database.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM users
        WHERE email = $1
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, normalizeEmail(email)))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*database.User, error) {
	query := `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanOne(row *sql.Row) (*database.User, error) {
	var user database.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
