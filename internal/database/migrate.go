package database

import (
	"fmt"

	"gorm.io/gorm"

	"scribe/internal/middleware"
)

// Index names backing case-insensitive uniqueness of users.
const (
	UsernameIndex = "idx_users_username_lower"
	EmailIndex    = "idx_users_email_lower"
)

var uniqueIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS " + UsernameIndex + " ON users (lower(username))",
	"CREATE UNIQUE INDEX IF NOT EXISTS " + EmailIndex + " ON users (lower(email))",
}

// Migrate creates or updates the schema and the expression indexes GORM
// cannot declare through struct tags.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	for _, stmt := range uniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	middleware.Logger.Info("Database migration completed")
	return nil
}
