package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vss-session/internal/api"
	"vss-session/internal/config"
	"vss-session/internal/database"
	"vss-session/internal/handlers"
	"vss-session/internal/middleware"
	"vss-session/internal/repositories"
	"vss-session/internal/services"
	"vss-session/internal/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const breakerName = "session-api"

// App holds one fully wired session: store, transport, pipeline and the
// services built on them.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Version string

	Registry   *prometheus.Registry
	Store      repositories.TokenStoreInterface
	Client     *api.Client
	Pipeline   *api.Pipeline
	Auth       services.AuthServiceInterface
	Controller services.SessionControllerInterface
	Guard      services.RouteGuardInterface
	Users      services.UserServiceInterface

	backend repositories.KeyValueStore
	health  handlers.HealthChecker
	limiter *middleware.RateLimiter
}

// healthFunc adapts a ping function to handlers.HealthChecker
type healthFunc func() error

func (f healthFunc) HealthCheck() error {
	return f()
}

// New opens the configured store and wires every component on top of it.
func New(cfg *config.Config, log *slog.Logger, version string) (*App, error) {
	backend, health, err := openBackend(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewPrometheusMetrics(registry)

	tokens := services.NewTokenService()
	store := repositories.NewTokenStore(backend, tokens, log)

	breaker := services.NewCircuitBreaker(breakerName, services.CircuitBreakerConfigFromAPI(cfg.API), metrics, log)
	client := api.NewClient(cfg.API, log, api.WithBreaker(breaker), api.WithMetrics(metrics))

	refresher := services.NewTokenRefresher(client, store, metrics, log)
	pipeline := api.NewPipeline(client, store, refresher, log, api.WithSingleFlight(cfg.API.RefreshSingleFlight))

	validators := validation.NewAuthValidators(cfg.Policy)
	auth := services.NewAuthService(client, pipeline, store, refresher, validators, metrics, log)
	audit := services.NewAuditLogger(log)
	controller := services.NewSessionController(auth, store, cfg.Session.InitTimeout, metrics, audit, log)
	pipeline.OnSessionExpired(controller.HandleSessionExpired)

	return &App{
		Config:     cfg,
		Log:        log,
		Version:    version,
		Registry:   registry,
		Store:      store,
		Client:     client,
		Pipeline:   pipeline,
		Auth:       auth,
		Controller: controller,
		Guard:      services.NewRouteGuard(),
		Users:      services.NewUserService(pipeline, store, audit, log),
		backend:    backend,
		health:     health,
		limiter:    middleware.NewRateLimiter(cfg.Bridge.RateLimitPerSecond, cfg.Bridge.RateLimitBurst),
	}, nil
}

// Initialize restores the persisted session. It never fails; an unusable
// session is cleared and the controller starts signed out.
func (a *App) Initialize(ctx context.Context) {
	a.Controller.Initialize(ctx)
}

// Close stops the controller and releases the store.
func (a *App) Close() error {
	a.Controller.Close()
	if err := a.backend.Close(); err != nil {
		return fmt.Errorf("failed to close session store: %w", err)
	}
	return nil
}

// openBackend builds the key/value store for cfg.Driver, wrapped in the
// encrypting decorator when a key is configured. health is nil for memory.
func openBackend(cfg config.StoreConfig, log *slog.Logger) (repositories.KeyValueStore, handlers.HealthChecker, error) {
	var (
		backend repositories.KeyValueStore
		health  handlers.HealthChecker
	)

	switch cfg.Driver {
	case config.StoreDriverMemory:
		backend = repositories.NewMemoryStore()

	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		db, err := database.Initialize(&cfg, log)
		if err != nil {
			return nil, nil, err
		}
		backend = repositories.NewSQLStore(db.DB, db.Close)
		health = db

	case config.StoreDriverRedis:
		client, err := repositories.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		backend = repositories.NewRedisStore(client, cfg.KeyPrefix)
		health = healthFunc(func() error { return client.Ping().Err() })

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidStoreDriver, cfg.Driver)
	}

	if len(cfg.EncryptionKey) == 0 {
		return backend, health, nil
	}

	encrypted, err := repositories.NewEncryptedStore(backend, cfg.EncryptionKey)
	if err != nil {
		return nil, nil, errors.Join(err, backend.Close())
	}
	log.Debug("Session store encryption enabled", "driver", cfg.Driver)
	return encrypted, health, nil
}
