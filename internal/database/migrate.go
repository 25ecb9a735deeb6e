package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/docsession/docsession/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies every pending embedded migration to db.
// The driver is not closed afterwards since that would close db.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debugf("migrations: schema up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	logVersion(m)
	return nil
}

func logVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if err != nil {
		logger.Errorf("migrations: read schema version: %v", err)
		return
	}
	if dirty {
		logger.Warnf("migrations: schema version %d is dirty; fix it by hand and force the version", version)
		return
	}
	logger.Infof("migrations: applied up to version %d", version)
}
