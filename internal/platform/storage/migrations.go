package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrator applies schema migrations.
type Migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

// NewMigrator returns Migrator running embedded migrations over db.
func NewMigrator(db *sql.DB) (Migrator, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("can't open embedded migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("can't create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("can't create migrator: %w", err)
	}

	return m, nil
}

// Migrate applies all pending migrations. Up to date schema isn't an error.
func Migrate(db *sql.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("can't migrate database: %w", err)
	}

	return nil
}

// Rollback reverts n last migrations.
func Rollback(db *sql.DB, n int) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	if err = m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("can't rollback database: %w", err)
	}

	return nil
}
