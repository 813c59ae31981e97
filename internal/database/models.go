package database

import "time"

// User represents a registered blog user
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AuditLog represents an authentication audit entry
type AuditLog struct {
	ID        int64     `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	UserID    *int64    `db:"user_id" json:"user_id,omitempty"`
	Details   string    `db:"details" json:"details"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Audit actions recorded by the auth service
const (
	AuditActionRegister    = "register"
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionRefresh     = "refresh"
	AuditActionLogout      = "logout"
)
