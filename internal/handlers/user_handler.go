package handlers

import (
	"net/http"

	"vss-session/internal/dto"
	"vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler handles admin user management through the signed-in session
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers lists users with pagination
// @Summary List users (admin)
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param search query string false "Name or email filter"
// @Param role query string false "Role filter"
// @Success 200 {object} dto.UsersListResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid pagination parameters"
// @Failure 401 {object} errors.ErrorResponse "SESSION_002 - Not signed in"
// @Failure 403 {object} errors.ErrorResponse "AUTH_005 - Requires admin role"
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page := getIntParam(c, "page", 1)
	limit := getIntParam(c, "limit", 20)

	if page < 1 {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("page: must be greater than 0"))
	}
	if limit < 1 || limit > 100 {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails("limit: must be between 1 and 100"))
	}

	params := dto.ListUsersParams{
		Page:      page,
		Limit:     limit,
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	if raw := c.QueryParam("role"); raw != "" {
		role := models.ParseRole(raw)
		if !role.Valid() {
			return SendError(c, errors.ValidationGeneral,
				errors.WithDetails("role: must be one of admin, colab, pending_approval"))
		}
		params.Role = &role
	}

	users, err := h.userService.ListUsers(c.Request().Context(), params)
	if err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}

// ApproveUser promotes a pending user to colab
// @Summary Approve user (admin)
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse "AUTH_005 - Requires admin role"
// @Router /users/{id}/approve [post]
func (h *UserHandler) ApproveUser(c echo.Context) error {
	user, err := h.userService.ApproveUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    user,
		Message: "User approved",
	})
}

// RevokeUser sends a user back to pending approval
// @Summary Revoke user (admin)
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} errors.ErrorResponse "AUTH_005 - Requires admin role"
// @Router /users/{id}/revoke [post]
func (h *UserHandler) RevokeUser(c echo.Context) error {
	user, err := h.userService.RevokeUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    user,
		Message: "User access revoked",
	})
}
