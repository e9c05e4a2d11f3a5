// Package db bootstraps the gorm MySQL connection.
package db

import (
	"fmt"
	"log/slog"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"contacts_backend/internal/app/config"
	authentity "contacts_backend/internal/feature/auth/domain/entity"
	contactentity "contacts_backend/internal/feature/contacts/domain/entity"
)

// Opener opens a gorm connection for the given DSN. Extracted so retry
// behavior can be tested without a real database.
type Opener func(dsn string) (*gorm.DB, error)

// GormOpener is the production Opener backed by the MySQL driver.
func GormOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry keeps trying to connect until timeout elapses.
// The database container often comes up after the app in compose setups.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}
}

// Open connects to MySQL and, when enabled, runs the schema migrations.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := ConnectWithRetry(cfg.DSN(), 60*time.Second, GormOpener)
	if err != nil {
		return nil, err
	}

	if cfg.Migrate {
		if err := db.AutoMigrate(
			&authentity.User{},
			&contactentity.Contact{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
