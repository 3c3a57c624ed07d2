package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vss-session/internal/config"
	"vss-session/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.StoreConfig
}

// New opens the session database for the sqlite or postgres driver.
func New(cfg *config.StoreConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxConns := cfg.MaxConnections
	if cfg.Driver == config.StoreDriverSQLite {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		maxConns = 1
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func dialectorFor(cfg *config.StoreConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
				return nil, fmt.Errorf("failed to create session directory: %w", err)
			}
		}
		return sqlite.Open(cfg.Path), nil
	case config.StoreDriverPostgres:
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q has no SQL backend", config.ErrInvalidStoreDriver, cfg.Driver)
	}
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(&models.SessionEntry{})
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Initialize opens the database and brings its schema up to date, falling back
// to gorm AutoMigrate when the migration runner fails.
func Initialize(cfg *config.StoreConfig, log *slog.Logger) (*DB, error) {
	db, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrationsIfEnabled(db, log); err != nil {
		log.Warn("Migration runner failed, falling back to AutoMigrate", "error", err)

		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	log.Debug("Session database initialized", "driver", cfg.Driver)
	return db, nil
}
