package handlers

import (
	"log/slog"
	"net/http"

	"vss-session/internal/dto"
	"vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/services"

	"github.com/labstack/echo/v4"
)

// SessionHandler exposes the session controller's state surface to an
// embedded web view
type SessionHandler struct {
	controller services.SessionControllerInterface
	guard      services.RouteGuardInterface
	log        *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller services.SessionControllerInterface, guard services.RouteGuardInterface, log *slog.Logger) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		guard:      guard,
		log:        log,
	}
}

// GetSession returns the current controller snapshot
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSessionResponse(h.controller.State()))
}

// Login signs in with email and password
// @Summary Login
// @Tags Session
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Login credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_00x - Credential rule failed"
// @Failure 401 {object} errors.ErrorResponse "AUTH_001 - Invalid credentials"
// @Failure 502 {object} errors.ErrorResponse "NETWORK_001 - Backend unreachable"
// @Router /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req models.Credentials

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := h.controller.Login(c.Request().Context(), req); err != nil {
		h.log.Info("Bridge login failed", "client_ip", getClientIP(c), "code", errors.CodeOf(err))
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSessionResponse(h.controller.State()))
}

// Register creates an account and signs in
// @Summary Register
// @Tags Session
// @Accept json
// @Produce json
// @Param request body models.RegistrationData true "Registration details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_00x - Registration rule failed"
// @Failure 422 {object} errors.ErrorResponse "SERVER_001 - Rejected by the backend"
// @Router /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req models.RegistrationData

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := h.controller.Register(c.Request().Context(), req); err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewSessionResponse(h.controller.State()))
}

// Logout ends the session. It never fails.
// @Summary Logout
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.controller.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewSessionResponse(h.controller.State()))
}

// ClearError dismisses the current error message
// @Summary Clear error
// @Tags Session
// @Success 204
// @Router /session/error [delete]
func (h *SessionHandler) ClearError(c echo.Context) error {
	h.controller.ClearError()
	return c.NoContent(http.StatusNoContent)
}

// RefreshProfile re-reads the signed-in user from the backend
// @Summary Refresh profile
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} errors.ErrorResponse "SESSION_002 - Not signed in"
// @Router /session/profile [post]
func (h *SessionHandler) RefreshProfile(c echo.Context) error {
	if err := h.controller.RefreshProfile(c.Request().Context()); err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSessionResponse(h.controller.State()))
}

// Route asks the guard what a navigation target should do
// @Summary Route decision
// @Tags Session
// @Produce json
// @Param target query string true "Target path"
// @Param required_role query string false "Role the target is restricted to"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid query"
// @Router /session/route [get]
func (h *SessionHandler) Route(c echo.Context) error {
	query := dto.RouteQuery{
		Target:       c.QueryParam("target"),
		RequiredRole: string(models.ParseRole(c.QueryParam("required_role"))),
	}

	if err := c.Validate(&query); err != nil {
		return err
	}

	target := models.RouteTarget{Path: query.Target}
	if query.RequiredRole != "" {
		role := models.Role(query.RequiredRole)
		target.RequiredRole = &role
	}

	state := h.controller.State()
	var decision models.RouteDecision
	if target.IsGuestOnly() {
		decision = h.guard.DecideGuestOnly(state.IsAuthenticated, state.IsLoading)
	} else {
		decision = h.guard.DecideForState(state, target)
	}

	return c.JSON(http.StatusOK, dto.RouteResponse{
		Target:   query.Target,
		Decision: decision,
		Redirect: decision.RedirectPath(),
	})
}
