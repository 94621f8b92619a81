// Package db opens and migrates the punchclock SQLite database.
package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hollandm/punchclock/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM connection to the SQLite database at path, creating the
// parent directory if needed.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("db: create %s: %w", dir, err)
		}
	}
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	return gormDB, nil
}

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Session{},
		&models.SyncedDay{},
		&models.SyncedEntry{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
