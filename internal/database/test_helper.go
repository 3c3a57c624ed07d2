package database

import (
	"testing"

	"vss-session/internal/config"
	"vss-session/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite session database with the schema applied.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.StoreConfig{
			Driver:         config.StoreDriverSQLite,
			Path:           ":memory:",
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

// CountEntries returns the number of persisted session keys.
func CountEntries(t *testing.T, db *DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count session entries: %v", err)
	}
	return count
}
