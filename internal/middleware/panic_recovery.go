package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"vss-session/internal/api"
	"vss-session/internal/errors"
	"vss-session/internal/models"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a handler panic into a SYSTEM_001 response carrying the
// request's trace ID. The stored session is not touched, so the bridge keeps
// serving the next request as the same user.
func PanicRecovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := recoveryTraceID(c)
				attrs := []any{
					slog.String("trace_id", traceID),
					slog.String("endpoint", c.Path()),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
					slog.String("panic", fmt.Sprintf("%v", r)),
					slog.String("stack_trace", string(debug.Stack())),
				}
				if user, ok := c.Get(UserContextKey).(*models.User); ok && user != nil {
					attrs = append(attrs, slog.String("user_id", user.ID.String()))
				}
				log.ErrorContext(c.Request().Context(), "Panic recovered in session bridge", attrs...)

				if err := c.JSON(http.StatusInternalServerError, errors.NewErrorResponse(errors.SystemInternalError, traceID)); err != nil {
					log.Error("Failed to send panic recovery response", "trace_id", traceID, "error", err)
				}
			}()

			return next(c)
		}
	}
}

// recoveryTraceID prefers the echo trace ID, then the ID handed to backend
// calls, so the panic log lines up with the pipeline's request logs.
func recoveryTraceID(c echo.Context) string {
	if traceID := GetTraceID(c); traceID != "" {
		return traceID
	}
	if requestID := api.RequestIDFromContext(c.Request().Context()); requestID != "" {
		return requestID
	}
	return "unknown"
}
