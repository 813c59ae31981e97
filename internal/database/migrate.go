package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and filesystem in package globals
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies every pending migration for the given database type
func Migrate(ctx context.Context, db *sql.DB, dbType string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := prepareGoose(dbType)
	if err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// SchemaVersion reports the latest applied migration version
func SchemaVersion(ctx context.Context, db *sql.DB, dbType string) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := prepareGoose(dbType); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func prepareGoose(dbType string) (string, error) {
	driverName, err := DriverName(dbType)
	if err != nil {
		return "", err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(driverName); err != nil {
		return "", fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return "migrations/" + dbType, nil
}
