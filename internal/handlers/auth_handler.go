package handlers

import (
	"net/http"

	"vss-session/internal/dto"
	"vss-session/internal/errors"
	"vss-session/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles the password recovery endpoints, which need no session
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ForgotPassword asks the backend to mail a recovery code
// @Summary Request password reset
// @Tags Password
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_00x - Invalid email"
// @Router /password/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusAccepted, SuccessResponse{
		Message: "If the account exists, a recovery code has been sent",
	})
}

// VerifyCode checks a recovery code before the new password is chosen
// @Summary Verify recovery code
// @Tags Password
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "Email and code"
// @Success 200 {object} dto.VerifyCodeResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_010 - Invalid code"
// @Router /password/verify [post]
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req dto.VerifyCodeRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	valid, err := h.authService.VerifyResetCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, dto.VerifyCodeResponse{Valid: valid})
}

// ResetPassword sets a new password with a verified code
// @Summary Reset password
// @Tags Password
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordForm true "Email, code and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_00x - Password rule failed"
// @Router /password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordForm

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return SendSessionError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Password has been reset",
	})
}
