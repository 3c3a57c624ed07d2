package dto

import "vss-session/internal/models"

// Bridge DTOs

// SessionResponse is the controller snapshot returned by the local bridge
type SessionResponse struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error"`
}

// NewSessionResponse converts a controller snapshot.
func NewSessionResponse(state models.SessionState) *SessionResponse {
	return &SessionResponse{
		User:            state.User,
		IsAuthenticated: state.IsAuthenticated,
		IsLoading:       state.IsLoading,
		Error:           state.Error,
	}
}

// RouteResponse is the guard decision for a navigation target
type RouteResponse struct {
	Target   string               `json:"target"`
	Decision models.RouteDecision `json:"decision"`
	Redirect string               `json:"redirect,omitempty"`
}

// HealthResponse reports bridge and store health
type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	Version string `json:"version"`
}

// RouteQuery is the navigation target the bridge asks the guard about
type RouteQuery struct {
	Target       string `json:"target" validate:"required,startswith=/"`
	RequiredRole string `json:"required_role" validate:"omitempty,oneof=admin colab pending_approval"`
}

// ResetPasswordForm is the bridge's password reset input. ConfirmPassword is
// checked locally and never sent to the backend.
type ResetPasswordForm struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
