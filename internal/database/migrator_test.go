package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"vss-session/internal/config"
	"vss-session/internal/logging"
	"vss-session/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortRetries(t *testing.T, retries int) {
	t.Helper()

	originalRetries := maxRetries
	originalInterval := retryInterval
	maxRetries = retries
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() {
		maxRetries = originalRetries
		retryInterval = originalInterval
	})
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, config.StoreDriverPostgres, logging.Discard())

	assert.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
	assert.Equal(t, config.StoreDriverPostgres, runner.driver)
}

func TestWaitForDatabase_Success(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(nil)

	runner := NewMigrationRunner(db, config.StoreDriverPostgres, logging.Discard())
	err = runner.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	shortRetries(t, 2)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	runner := NewMigrationRunner(db, config.StoreDriverPostgres, logging.Discard())
	err = runner.WaitForDatabase()

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	shortRetries(t, 2)
	for i := 0; i < maxRetries; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	runner := NewMigrationRunner(db, config.StoreDriverPostgres, logging.Discard())
	err = runner.WaitForDatabase()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db, "mysql", logging.Discard())

	err = runner.RunMigrations()

	assert.ErrorIs(t, err, config.ErrInvalidStoreDriver)
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db := SetupTestDB(t)
	db.config.AutoMigrate = false

	assert.NoError(t, RunMigrationsIfEnabled(db, logging.Discard()))
}

func TestInitialize_SQLiteAppliesEmbeddedMigrations(t *testing.T) {
	cfg := &config.StoreConfig{
		Driver:          config.StoreDriverSQLite,
		Path:            filepath.Join(t.TempDir(), "nested", "session.db"),
		MaxConnections:  1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		AutoMigrate:     true,
	}

	db, err := Initialize(cfg, logging.Discard())
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.Migrator().HasTable(&models.SessionEntry{}))
	assert.NoError(t, db.HealthCheck())

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	version, dirty, err := NewMigrationRunner(sqlDB, config.StoreDriverSQLite, logging.Discard()).GetMigrationStatus()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestNew_RejectsRedisDriver(t *testing.T) {
	_, err := New(&config.StoreConfig{Driver: config.StoreDriverRedis})

	assert.ErrorIs(t, err, config.ErrInvalidStoreDriver)
}
