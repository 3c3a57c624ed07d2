package dto

import "vss-session/internal/models"

// Backend request DTOs

// LoginRequest contains login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Name     string       `json:"name"`
	Role     *models.Role `json:"role,omitempty"`
}

// RefreshTokenRequest contains the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest optionally carries the refresh token to revoke
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// ForgotPasswordRequest starts password recovery
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyCodeRequest checks a password recovery code
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResetPasswordRequest sets a new password with a verified code
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// Backend response DTOs

// AuthResponse covers every login, register and refresh body the backend has sent:
// {user, tokens:{...}}, a flat {accessToken, refreshToken}, or a bare user object.
type AuthResponse struct {
	User         *models.User      `json:"user,omitempty"`
	Tokens       *models.TokenPair `json:"tokens,omitempty"`
	AccessToken  string            `json:"accessToken,omitempty"`
	RefreshToken string            `json:"refreshToken,omitempty"`
	TokenType    string            `json:"tokenType,omitempty"`

	// bare user fields
	ID    models.UserID `json:"id"`
	Email string        `json:"email,omitempty"`
	Name  string        `json:"name,omitempty"`
	Role  models.Role   `json:"role,omitempty"`
}

// TokenPair returns the tokens carried by the response, nested or flat.
func (r *AuthResponse) TokenPair() models.TokenPair {
	if r.Tokens != nil && r.Tokens.AccessToken != "" {
		return *r.Tokens
	}
	return models.TokenPair{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
	}
}

// Profile returns the user carried by the response, nested or bare, or nil.
func (r *AuthResponse) Profile() *models.User {
	if r.User != nil {
		return r.User
	}
	if r.ID.IsZero() {
		return nil
	}
	return &models.User{
		ID:    r.ID,
		Email: r.Email,
		Name:  r.Name,
		Role:  r.Role,
	}
}

// VerifyCodeResponse reports whether a recovery code is valid
type VerifyCodeResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is the generic acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the backend's failure body. Either field may carry the text.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Text returns the first non-empty message.
func (b *ErrorBody) Text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}
