package handlers

import (
	"log/slog"
	"net/http"

	"vss-session/internal/dto"
	"vss-session/internal/errors"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether the session store is reachable
type HealthChecker interface {
	HealthCheck() error
}

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	store   HealthChecker
	driver  string
	version string
	log     *slog.Logger
}

// NewHealthCheckHandler creates a new health check handler. A nil store is
// always healthy.
func NewHealthCheckHandler(store HealthChecker, driver, version string, log *slog.Logger) *HealthCheckHandler {
	return &HealthCheckHandler{store: store, driver: driver, version: version, log: log}
}

// HealthCheck reports bridge and store status
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Session store unavailable"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	if h.store != nil {
		if err := h.store.HealthCheck(); err != nil {
			h.log.Error("Session store health check failed", "driver", h.driver, "error", err)
			return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Session store unavailable"))
		}
	}

	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Store:   h.driver,
		Version: h.version,
	})
}
