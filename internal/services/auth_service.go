package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"vss-session/internal/api"
	"vss-session/internal/dto"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/repositories"
	"vss-session/internal/validation"
)

var (
	ErrMissingTokens  = errors.New("response carried no access token")
	ErrMissingProfile = errors.New("response carried no user profile")
)

// AuthService is the session repository. Unauthenticated routes go straight to
// the transport; the profile fetch goes through the request pipeline.
type AuthService struct {
	sender     api.Sender
	requester  api.Requester
	store      repositories.TokenStoreInterface
	refresher  TokenRefresherInterface
	validators *validation.AuthValidators
	metrics    MetricsRecorderInterface
	logger     *slog.Logger
}

// NewAuthService creates a new session repository
func NewAuthService(
	sender api.Sender,
	requester api.Requester,
	store repositories.TokenStoreInterface,
	refresher TokenRefresherInterface,
	validators *validation.AuthValidators,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		sender:     sender,
		requester:  requester,
		store:      store,
		refresher:  refresher,
		validators: validators,
		metrics:    metrics,
		logger:     logger,
	}
}

// Login validates credentials locally, authenticates against the backend and
// persists tokens and profile together.
func (s *AuthService) Login(ctx context.Context, credentials models.Credentials) (*models.User, error) {
	if err := s.validators.ValidateCredentials(credentials); err != nil {
		s.recordValidationFailure(err)
		return nil, err
	}

	resp, err := s.post(ctx, "/auth/login", dto.LoginRequest{
		Email:    credentials.Email,
		Password: credentials.Password,
	})
	if err != nil {
		s.logger.Info("Login rejected", "status", api.StatusOf(err), "error", err)
		return nil, translateError(err, apperrors.AuthInvalidCredentials)
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		return nil, apperrors.NewBadResponseError(err)
	}

	user, err := s.establish(ctx, &body)
	if err != nil {
		return nil, err
	}

	s.recordEvent("login")
	s.logger.Info("User logged in", "user_id", user.ID.String(), "role", user.Role.String())
	return user, nil
}

// Register creates the account and leaves a live session behind. When the
// backend answers with the profile only, the same credentials are used to log in.
func (s *AuthService) Register(ctx context.Context, data models.RegistrationData) (*models.User, error) {
	if err := s.validators.ValidateRegistration(data); err != nil {
		s.recordValidationFailure(err)
		return nil, err
	}

	resp, err := s.post(ctx, "/auth/register", dto.RegisterRequest{
		Email:    data.Email,
		Password: data.Password,
		Name:     data.Name,
		Role:     data.Role,
	})
	if err != nil {
		s.logger.Info("Registration rejected", "status", api.StatusOf(err), "error", err)
		return nil, translateError(err, apperrors.AuthInvalidCredentials)
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		return nil, apperrors.NewBadResponseError(err)
	}

	if body.TokenPair().AccessToken == "" {
		s.logger.Debug("Registration returned no tokens, logging in")
		return s.Login(ctx, data.Credentials())
	}

	user, err := s.establish(ctx, &body)
	if err != nil {
		return nil, err
	}

	s.recordEvent("register")
	s.logger.Info("User registered", "user_id", user.ID.String(), "role", user.Role.String())
	return user, nil
}

// Logout revokes the refresh token on a best-effort basis. The local session is
// always cleared.
func (s *AuthService) Logout(ctx context.Context) {
	tokens := s.store.GetTokens()

	defer func() {
		if err := s.store.ClearAll(); err != nil {
			s.logger.Error("Failed to clear session on logout", "error", err)
		}
		s.recordEvent("logout")
	}()

	req, err := api.NewRequest(http.MethodPost, "/auth/logout", dto.LogoutRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		s.logger.Warn("Failed to build logout request", "error", err)
		return
	}

	if _, err := s.sender.Send(ctx, req, tokens.AccessToken); err != nil {
		s.logger.Warn("Remote logout failed", "error", err)
	}
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return s.refresher.Refresh(ctx, refreshToken)
}

// GetCurrentUser fetches and caches the profile. A rejected session clears the store.
func (s *AuthService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	req, err := api.NewRequest(http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.requester.Do(ctx, req)
	if err != nil {
		if api.IsUnauthorized(err) || apperrors.IsSessionExpired(err) {
			if clearErr := s.store.ClearAll(); clearErr != nil {
				s.logger.Error("Failed to clear invalid session", "error", clearErr)
			}
			s.recordEvent("session_invalid")
			return nil, apperrors.NewAuthenticationError(apperrors.AuthSessionInvalid, "", http.StatusUnauthorized, err)
		}
		return nil, translateError(err, apperrors.AuthSessionInvalid)
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		return nil, apperrors.NewBadResponseError(err)
	}

	user := body.Profile()
	if user == nil {
		return nil, apperrors.NewBadResponseError(ErrMissingProfile)
	}

	if err := s.store.SetUser(user); err != nil {
		return nil, fmt.Errorf("failed to cache profile: %w", err)
	}
	return user, nil
}

// RequestPasswordReset asks the backend to send a recovery code to email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.validators.ValidateEmail(email); err != nil {
		s.recordValidationFailure(err)
		return err
	}

	if _, err := s.post(ctx, "/auth/forgot-password", dto.ForgotPasswordRequest{Email: email}); err != nil {
		return translateError(err, apperrors.AuthInvalidCredentials)
	}
	return nil
}

func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) (bool, error) {
	if err := s.validators.ValidateResetCode(email, code); err != nil {
		s.recordValidationFailure(err)
		return false, err
	}

	resp, err := s.post(ctx, "/auth/verify-code", dto.VerifyCodeRequest{Email: email, Code: code})
	if err != nil {
		return false, translateError(err, apperrors.AuthInvalidCredentials)
	}

	var body dto.VerifyCodeResponse
	if err := resp.Decode(&body); err != nil {
		return false, apperrors.NewBadResponseError(err)
	}
	return body.Valid, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword, confirmation string) error {
	if err := s.validators.ValidatePasswordReset(email, code, newPassword, confirmation); err != nil {
		s.recordValidationFailure(err)
		return err
	}

	_, err := s.post(ctx, "/auth/reset-password", dto.ResetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	})
	if err != nil {
		return translateError(err, apperrors.AuthInvalidCredentials)
	}

	s.logger.Info("Password reset completed")
	return nil
}

// establish persists the pair and profile carried by body. A body without a
// profile is completed with a profile fetch using the new access token.
func (s *AuthService) establish(ctx context.Context, body *dto.AuthResponse) (*models.User, error) {
	pair := body.TokenPair()
	if pair.AccessToken == "" {
		return nil, apperrors.NewBadResponseError(ErrMissingTokens)
	}

	user := body.Profile()
	if user == nil {
		fetched, err := s.fetchProfile(ctx, pair.AccessToken)
		if err != nil {
			return nil, err
		}
		user = fetched
	}

	if err := s.store.SetSession(pair, user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	if cached := s.store.GetUser(); cached != nil {
		return cached, nil
	}
	return user, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, accessToken string) (*models.User, error) {
	req, err := api.NewRequest(http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.sender.Send(ctx, req, accessToken)
	if err != nil {
		return nil, translateError(err, apperrors.AuthSessionInvalid)
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		return nil, apperrors.NewBadResponseError(err)
	}

	user := body.Profile()
	if user == nil {
		return nil, apperrors.NewBadResponseError(ErrMissingProfile)
	}
	return user, nil
}

func (s *AuthService) post(ctx context.Context, path string, payload any) (*api.Response, error) {
	req, err := api.NewRequest(http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return s.sender.Send(ctx, req, "")
}

func (s *AuthService) recordValidationFailure(err error) {
	if s.metrics == nil {
		return
	}
	var sessionErr *apperrors.Error
	if errors.As(err, &sessionErr) {
		s.metrics.IncrementCounter("validation.failed", map[string]string{"field": sessionErr.Field})
	}
}

func (s *AuthService) recordEvent(event string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("session.event", map[string]string{"event": event})
}
