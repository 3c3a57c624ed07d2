package services

import (
	"log/slog"
	"sync"
	"time"

	"vss-session/internal/config"
	"vss-session/internal/models"
)

type CircuitBreakerConfig struct {
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:     5,
		ResetTimeout:    30 * time.Second,
		HalfOpenMaxSucc: 3,
	}
}

// CircuitBreakerConfigFromAPI reads the breaker thresholds from the API config,
// keeping defaults for unset values.
func CircuitBreakerConfigFromAPI(cfg config.APIConfig) CircuitBreakerConfig {
	cbConfig := DefaultCircuitBreakerConfig()
	if cfg.BreakerMaxFailures > 0 {
		cbConfig.MaxFailures = cfg.BreakerMaxFailures
	}
	if cfg.BreakerResetTimeout > 0 {
		cbConfig.ResetTimeout = cfg.BreakerResetTimeout
	}
	if cfg.BreakerHalfOpenSucc > 0 {
		cbConfig.HalfOpenMaxSucc = cfg.BreakerHalfOpenSucc
	}
	return cbConfig
}

const (
	StateClosed models.CircuitBreakerState = iota
	StateOpen
	StateHalfOpen
)

// CircuitBreaker stops calls to the backend after repeated transport failures
type CircuitBreaker struct {
	mu                sync.RWMutex
	name              string
	config            CircuitBreakerConfig
	state             models.CircuitBreakerState
	failures          int
	halfOpenSuccesses int
	lastFailureTime   time.Time
	now               func() time.Time
	metrics           MetricsRecorderInterface
	log               *slog.Logger
}

func NewCircuitBreaker(name string, config CircuitBreakerConfig, metrics MetricsRecorderInterface, log *slog.Logger) CircuitBreakerInterface {
	return &CircuitBreaker{
		name:    name,
		config:  config,
		state:   StateClosed,
		now:     time.Now,
		metrics: metrics,
		log:     log,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.shouldTransitionToHalfOpen() {
		cb.setState(StateHalfOpen)
		cb.halfOpenSuccesses = 0
		return false
	}

	return cb.state == StateOpen
}

func (cb *CircuitBreaker) shouldTransitionToHalfOpen() bool {
	return cb.now().Sub(cb.lastFailureTime) > cb.config.ResetTimeout
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses >= cb.config.HalfOpenMaxSucc {
			cb.transitionToClosed()
		}
	} else if cb.state == StateClosed {
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) transitionToClosed() {
	cb.setState(StateClosed)
	cb.failures = 0
	cb.halfOpenSuccesses = 0
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = cb.now()

	if cb.state == StateHalfOpen {
		cb.transitionToOpen()
	} else if cb.state == StateClosed {
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.transitionToOpen()
		}
	}
}

func (cb *CircuitBreaker) transitionToOpen() {
	cb.setState(StateOpen)
	cb.halfOpenSuccesses = 0
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(state models.CircuitBreakerState) {
	if cb.state == state {
		return
	}

	cb.log.Warn("Circuit breaker state changed",
		"service", cb.name,
		"from", cb.state.String(),
		"to", state.String(),
	)
	cb.state = state

	if cb.metrics != nil {
		cb.metrics.RecordGauge("circuit_breaker.state", float64(state), map[string]string{"service": cb.name})
	}
}

func (cb *CircuitBreaker) GetState() models.CircuitBreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.setState(StateClosed)
	cb.failures = 0
	cb.halfOpenSuccesses = 0
}

func (cb *CircuitBreaker) GetFailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failures
}
