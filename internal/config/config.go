package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

var (
	ErrInvalidStoreDriver   = errors.New("invalid store driver")
	ErrInvalidEncryptionKey = errors.New("encryption key must be 32 bytes, base64 encoded")
	ErrMissingBaseURL       = errors.New("API base URL is required")
)

type Config struct {
	Environment string
	API         APIConfig
	Store       StoreConfig
	Policy      PolicyConfig
	Session     SessionConfig
	Log         LogConfig
	Bridge      BridgeConfig
}

type APIConfig struct {
	BaseURL             string
	Timeout             time.Duration
	RateLimitPerSecond  float64
	RateLimitBurst      int
	RefreshSingleFlight bool
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
	BreakerHalfOpenSucc int
}

type StoreConfig struct {
	Driver          string
	Path            string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	KeyPrefix       string
	EncryptionKey   []byte
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type PolicyConfig struct {
	PasswordMinLength      int
	PasswordMaxLength      int
	LoginPasswordMinLength int
	RequireSpecialChars    bool
	NameMinLength          int
	NameMaxLength          int
	EmailMaxLength         int
	AllowedEmailDomains    []string
}

type SessionConfig struct {
	InitTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type BridgeConfig struct {
	Host               string
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	config := &Config{
		Environment: getEnv("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:             strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
			Timeout:             getDurationEnv("API_TIMEOUT", 10*time.Second),
			RateLimitPerSecond:  getFloatEnv("API_RATE_LIMIT", 20),
			RateLimitBurst:      getIntEnv("API_RATE_BURST", 10),
			RefreshSingleFlight: getBoolEnv("REFRESH_SINGLE_FLIGHT", true),
			BreakerMaxFailures:  getIntEnv("API_BREAKER_MAX_FAILURES", 5),
			BreakerResetTimeout: getDurationEnv("API_BREAKER_RESET_TIMEOUT", 30*time.Second),
			BreakerHalfOpenSucc: getIntEnv("API_BREAKER_HALF_OPEN_SUCCESSES", 1),
		},
		Store: StoreConfig{
			Driver:          strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
			Path:            getEnv("STORE_PATH", defaultStorePath()),
			DSN:             getEnv("STORE_DSN", ""),
			RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getEnv("REDIS_PASSWORD", ""),
			RedisDB:         getIntEnv("REDIS_DB", 0),
			KeyPrefix:       getEnv("STORE_KEY_PREFIX", "vss:"),
			MaxConnections:  getIntEnv("STORE_MAX_CONNECTIONS", 5),
			MaxIdleConns:    getIntEnv("STORE_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getDurationEnv("STORE_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", true),
		},
		Policy: PolicyConfig{
			PasswordMinLength:      getIntEnv("PASSWORD_MIN_LENGTH", 8),
			PasswordMaxLength:      getIntEnv("PASSWORD_MAX_LENGTH", 72),
			LoginPasswordMinLength: getIntEnv("LOGIN_PASSWORD_MIN_LENGTH", 6),
			RequireSpecialChars:    getBoolEnv("PASSWORD_REQUIRE_SPECIAL", false),
			NameMinLength:          getIntEnv("NAME_MIN_LENGTH", 2),
			NameMaxLength:          getIntEnv("NAME_MAX_LENGTH", 50),
			EmailMaxLength:         getIntEnv("EMAIL_MAX_LENGTH", 254),
			AllowedEmailDomains:    getListEnv("ALLOWED_EMAIL_DOMAINS"),
		},
		Session: SessionConfig{
			InitTimeout: getDurationEnv("SESSION_INIT_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Bridge: BridgeConfig{
			Host:               getEnv("BRIDGE_HOST", "127.0.0.1"),
			Port:               getEnv("BRIDGE_PORT", "8787"),
			ReadTimeout:        getDurationEnv("BRIDGE_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:       getDurationEnv("BRIDGE_WRITE_TIMEOUT", 15*time.Second),
			RateLimitPerSecond: getFloatEnv("BRIDGE_RATE_LIMIT", 5),
			RateLimitBurst:     getIntEnv("BRIDGE_RATE_BURST", 10),
		},
	}

	key, err := loadEncryptionKey(os.Getenv("STORE_ENCRYPTION_KEY"))
	if err != nil {
		return nil, err
	}
	config.Store.EncryptionKey = key

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings that cannot fall back to a default.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}

	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverRedis:
	case StoreDriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("%w: STORE_DSN is required for postgres", ErrInvalidStoreDriver)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStoreDriver, c.Store.Driver)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *BridgeConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated variable, dropping blanks.
func getListEnv(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.ToLower(strings.TrimSpace(item)); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(home, ".vss-session", "session.db")
}

// loadEncryptionKey decodes STORE_ENCRYPTION_KEY. An empty value disables encryption.
func loadEncryptionKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncryptionKey, err)
	}
	if len(key) != 32 {
		return nil, ErrInvalidEncryptionKey
	}
	return key, nil
}
