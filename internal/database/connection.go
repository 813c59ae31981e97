package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"newsblog/pkg/config"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DriverName maps a configured database type to its database/sql driver
func DriverName(dbType string) (string, error) {
	switch dbType {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// NewConnection creates a new database connection based on configuration
func NewConnection(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	driverName, err := DriverName(cfg.Type)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN()
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	if isInMemory(cfg.Type, dsn) {
		// every new connection to :memory: is a fresh, empty database, so the
		// single connection must never be closed by the pool
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func isInMemory(dbType, dsn string) bool {
	return dbType == "sqlite" && strings.Contains(dsn, ":memory:")
}
