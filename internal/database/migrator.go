package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vss-session/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// MigrationRunner applies the embedded schema migrations
type MigrationRunner struct {
	db     *sql.DB
	driver string
	log    *slog.Logger
}

// NewMigrationRunner creates a runner for an open connection of the given store driver
func NewMigrationRunner(db *sql.DB, driver string, log *slog.Logger) *MigrationRunner {
	return &MigrationRunner{
		db:     db,
		driver: driver,
		log:    log,
	}
}

// WaitForDatabase waits for the database to accept connections
func (mr *MigrationRunner) WaitForDatabase() error {
	for i := 0; i < maxRetries; i++ {
		err := mr.db.Ping()
		if err == nil {
			return nil
		}

		mr.log.Info("Session database not ready", "attempt", i+1, "max_attempts", maxRetries, "error", err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database not ready after %d attempts", maxRetries)
}

func (mr *MigrationRunner) newMigrate() (*migrate.Migrate, error) {
	var (
		driver     database.Driver
		sourcePath string
		err        error
	)

	switch mr.driver {
	case config.StoreDriverSQLite:
		sourcePath = "migrations/sqlite"
		driver, err = sqlite3.WithInstance(mr.db, &sqlite3.Config{})
	case config.StoreDriverPostgres:
		sourcePath = "migrations/postgres"
		driver, err = postgres.WithInstance(mr.db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("%w: no migrations for %q", config.ErrInvalidStoreDriver, mr.driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration driver: %w", mr.driver, err)
	}

	source, err := iofs.New(migrationFiles, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, mr.driver, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// RunMigrations executes all pending migrations
func (mr *MigrationRunner) RunMigrations() error {
	m, err := mr.newMigrate()
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		mr.log.Warn("Session database is dirty, forcing version", "version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err == nil {
		newVersion, _, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get new migration version: %w", err)
		}
		mr.log.Info("Applied session store migrations", "version", newVersion)
	}

	return nil
}

// GetMigrationStatus returns the current migration status
func (mr *MigrationRunner) GetMigrationStatus() (version uint, dirty bool, err error) {
	m, err := mr.newMigrate()
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// RunMigrationsIfEnabled runs migrations when AutoMigrate is set. Postgres
// migrations run on a dedicated lib/pq connection; sqlite reuses the gorm pool.
func RunMigrationsIfEnabled(db *DB, log *slog.Logger) error {
	if !db.config.AutoMigrate {
		log.Debug("Auto-migration disabled")
		return nil
	}

	switch db.config.Driver {
	case config.StoreDriverPostgres:
		conn, err := sql.Open("postgres", db.config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open migration connection: %w", err)
		}
		defer conn.Close()

		runner := NewMigrationRunner(conn, config.StoreDriverPostgres, log)
		if err := runner.WaitForDatabase(); err != nil {
			return fmt.Errorf("database readiness check failed: %w", err)
		}
		return runner.RunMigrations()
	default:
		sqlDB, err := db.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return NewMigrationRunner(sqlDB, db.config.Driver, log).RunMigrations()
	}
}
