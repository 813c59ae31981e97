package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsblog/internal/database"
)

type AuditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// InsertAuditLog inserts a new audit log entry
func (r *AuditLogRepository) InsertAuditLog(ctx context.Context, log *database.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO audit_logs (action, user_id, details, ip_address, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query, log.Action, log.UserID, log.Details, log.IPAddress, log.CreatedAt).
		Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetAuditLogsByUser returns the user's entries, newest first
func (r *AuditLogRepository) GetAuditLogsByUser(ctx context.Context, userID int64, limit, offset int) ([]database.AuditLog, error) {
	query := `
        SELECT id, action, user_id, details, ip_address, created_at
        FROM audit_logs
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	logs := []database.AuditLog{}
	for rows.Next() {
		var (
			log     database.AuditLog
			uid     sql.NullInt64
			details sql.NullString
			ip      sql.NullString
		)
		if err := rows.Scan(&log.ID, &log.Action, &uid, &details, &ip, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if uid.Valid {
			log.UserID = &uid.Int64
		}
		log.Details = details.String
		log.IPAddress = ip.String
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return logs, nil
}
