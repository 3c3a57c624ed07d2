package services

import (
	"context"
	"time"

	"vss-session/internal/dto"
	"vss-session/internal/models"
)

// TokenServiceInterface inspects access tokens without verifying their signature
type TokenServiceInterface interface {
	DecodeToken(token string) (*models.DecodedToken, error)
	IsTokenExpired(token string) bool
}

// TokenRefresherInterface exchanges a refresh token for a new pair and persists it
type TokenRefresherInterface interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// AuthServiceInterface defines the session repository: every operation that
// talks to the backend's auth routes and keeps the token store in step
type AuthServiceInterface interface {
	Login(ctx context.Context, credentials models.Credentials) (*models.User, error)
	Register(ctx context.Context, data models.RegistrationData) (*models.User, error)
	Logout(ctx context.Context)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	GetCurrentUser(ctx context.Context) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) (bool, error)
	ResetPassword(ctx context.Context, email, code, newPassword, confirmation string) error
}

// SessionControllerInterface is the state surface presentation code binds to
type SessionControllerInterface interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, credentials models.Credentials) error
	Register(ctx context.Context, data models.RegistrationData) error
	Logout(ctx context.Context)
	ClearError()
	HandleSessionExpired()
	RefreshProfile(ctx context.Context) error
	State() models.SessionState
	Close()
}

// RouteGuardInterface decides what a navigation target renders
type RouteGuardInterface interface {
	Decide(input models.GuardInput) models.RouteDecision
	DecideGuestOnly(isAuthenticated, isLoading bool) models.RouteDecision
	DecideForState(state models.SessionState, target models.RouteTarget) models.RouteDecision
}

// UserServiceInterface defines admin user management
type UserServiceInterface interface {
	ListUsers(ctx context.Context, params dto.ListUsersParams) (*dto.UsersListResponse, error)
	UpdateUserRole(ctx context.Context, userID string, role models.Role) (*models.User, error)
	ApproveUser(ctx context.Context, userID string) (*models.User, error)
	RevokeUser(ctx context.Context, userID string) (*models.User, error)
}

// AuditLoggerInterface records session lifecycle and admin events
type AuditLoggerInterface interface {
	LogSessionEvent(ctx context.Context, event string, user *models.User)
	LogRoleChange(ctx context.Context, actor *models.User, userID string, role models.Role)
}

// MetricsRecorderInterface defines the contract for recording metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// CircuitBreakerInterface defines the contract for circuit breaker operations
type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}
