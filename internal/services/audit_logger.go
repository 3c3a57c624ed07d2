package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"vss-session/internal/api"
	"vss-session/internal/models"
)

const (
	// RedactedValue replaces values that must not reach the logs
	RedactedValue = "***REDACTED***"

	AuditEventLogin          = "login"
	AuditEventRegister       = "register"
	AuditEventLogout         = "logout"
	AuditEventSessionExpired = "session_expired"
	AuditEventRoleChanged    = "role_changed"
)

// AuditLogger writes one structured record per session lifecycle or admin event
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	return &AuditLogger{
		logger: logger.With(slog.String("component", "audit")),
	}
}

// LogSessionEvent records a login, registration, logout or expiry. user may be
// nil when the session had no cached profile.
func (al *AuditLogger) LogSessionEvent(ctx context.Context, event string, user *models.User) {
	attrs := []any{
		slog.String("event_type", event),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	}
	if user != nil {
		attrs = append(attrs,
			slog.String("user_id", user.ID.String()),
			slog.String("email", maskEmail(user.Email)),
			slog.String("role", user.Role.String()),
		)
	}

	al.logger.InfoContext(ctx, "session event", attrs...)
}

// LogRoleChange records an admin changing another user's role.
func (al *AuditLogger) LogRoleChange(ctx context.Context, actor *models.User, userID string, role models.Role) {
	actorID := ""
	if actor != nil {
		actorID = actor.ID.String()
	}

	al.logger.InfoContext(ctx, "user role changed",
		slog.String("event_type", AuditEventRoleChanged),
		slog.String("admin_user_id", actorID),
		slog.String("user_id", userID),
		slog.String("new_role", role.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", getCorrelationID(ctx)),
	)
}

func getCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return api.RequestIDFromContext(ctx)
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 1 {
		return RedactedValue
	}
	return email[:1] + "***" + email[at:]
}
