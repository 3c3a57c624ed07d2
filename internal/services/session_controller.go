package services

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	apperrors "vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/repositories"
)

// SessionController owns the session state presentation code reads. Its lock is
// never held across repository calls: the pipeline's expiry hook re-enters it.
type SessionController struct {
	auth        AuthServiceInterface
	store       repositories.TokenStoreInterface
	initTimeout time.Duration
	metrics     MetricsRecorderInterface
	audit       AuditLoggerInterface
	logger      *slog.Logger

	initOnce sync.Once

	mu     sync.RWMutex
	state  models.SessionState
	closed bool
}

// NewSessionController creates a controller that reports loading until Initialize completes
func NewSessionController(
	auth AuthServiceInterface,
	store repositories.TokenStoreInterface,
	initTimeout time.Duration,
	metrics MetricsRecorderInterface,
	audit AuditLoggerInterface,
	logger *slog.Logger,
) SessionControllerInterface {
	return &SessionController{
		auth:        auth,
		store:       store,
		initTimeout: initTimeout,
		metrics:     metrics,
		audit:       audit,
		logger:      logger,
		state:       models.SessionState{IsLoading: true},
	}
}

// Initialize restores a stored session once. Failures leave the controller
// logged out and are never surfaced as an error.
func (c *SessionController) Initialize(ctx context.Context) {
	c.initOnce.Do(func() {
		user := c.restore(ctx)
		c.apply(func(s *models.SessionState) {
			s.User = user
			s.IsLoading = false
		})
	})
}

func (c *SessionController) restore(ctx context.Context) *models.User {
	if c.store.GetAccessToken() == "" {
		return nil
	}

	if c.initTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.initTimeout)
		defer cancel()
	}

	user, err := c.auth.GetCurrentUser(ctx)
	if err != nil {
		c.logger.Info("Stored session could not be restored", "error", err)
		if clearErr := c.store.ClearAll(); clearErr != nil {
			c.logger.Error("Failed to clear stored session", "error", clearErr)
		}
		return nil
	}
	return user
}

func (c *SessionController) Login(ctx context.Context, credentials models.Credentials) error {
	c.begin()
	defer c.finish()

	user, err := c.auth.Login(ctx, credentials)
	if err != nil {
		c.fail(err)
		return err
	}

	c.apply(func(s *models.SessionState) { s.User = user })
	c.audit.LogSessionEvent(ctx, AuditEventLogin, user)
	return nil
}

// Register signs the user up; the session is live on success.
func (c *SessionController) Register(ctx context.Context, data models.RegistrationData) error {
	c.begin()
	defer c.finish()

	user, err := c.auth.Register(ctx, data)
	if err != nil {
		c.fail(err)
		return err
	}

	c.apply(func(s *models.SessionState) { s.User = user })
	c.audit.LogSessionEvent(ctx, AuditEventRegister, user)
	return nil
}

// Logout always ends signed out.
func (c *SessionController) Logout(ctx context.Context) {
	defer c.apply(func(s *models.SessionState) {
		s.User = nil
		s.Error = ""
		s.IsLoading = false
	})

	user := c.State().User
	c.auth.Logout(ctx)
	c.audit.LogSessionEvent(ctx, AuditEventLogout, user)
}

func (c *SessionController) ClearError() {
	c.apply(func(s *models.SessionState) { s.Error = "" })
}

// HandleSessionExpired moves the controller to logged out after the pipeline
// gave up on a refresh. No error is shown for a mid-session expiry.
func (c *SessionController) HandleSessionExpired() {
	c.logger.Info("Session expired, signing out")
	user := c.State().User
	c.apply(func(s *models.SessionState) { s.User = nil })
	c.audit.LogSessionEvent(context.Background(), AuditEventSessionExpired, user)
}

// RefreshProfile re-fetches the current user. A rejected session signs out.
func (c *SessionController) RefreshProfile(ctx context.Context) error {
	if c.store.GetAccessToken() == "" {
		return apperrors.NewAuthenticationError(apperrors.SessionNotAuthenticated, "", http.StatusUnauthorized, nil)
	}

	user, err := c.auth.GetCurrentUser(ctx)
	if err != nil {
		if apperrors.IsAuthentication(err) || apperrors.IsSessionExpired(err) {
			c.apply(func(s *models.SessionState) { s.User = nil })
		}
		return err
	}

	c.apply(func(s *models.SessionState) { s.User = user })
	return nil
}

// State returns a copy of the current state.
func (c *SessionController) State() models.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := c.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// Close detaches the controller. Operations that finish afterwards leave the state untouched.
func (c *SessionController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *SessionController) begin() {
	c.apply(func(s *models.SessionState) {
		s.IsLoading = true
		s.Error = ""
	})
}

func (c *SessionController) finish() {
	c.apply(func(s *models.SessionState) { s.IsLoading = false })
}

func (c *SessionController) fail(err error) {
	message := apperrors.UserMessage(err)
	c.apply(func(s *models.SessionState) { s.Error = message })
}

func (c *SessionController) apply(mutate func(*models.SessionState)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	mutate(&c.state)
	c.state.IsAuthenticated = c.state.User != nil
	authenticated := c.state.IsAuthenticated
	c.mu.Unlock()

	if c.metrics != nil {
		value := 0.0
		if authenticated {
			value = 1
		}
		c.metrics.RecordGauge("session.authenticated", value, nil)
	}
}
