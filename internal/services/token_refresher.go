package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"vss-session/internal/api"
	"vss-session/internal/dto"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/repositories"
)

var ErrNoRefreshToken = errors.New("no refresh token available")

// TokenRefresher renews the token pair. It talks to the transport directly so
// a refresh can never trigger another refresh.
type TokenRefresher struct {
	sender  api.Sender
	store   repositories.TokenStoreInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

var _ api.Refresher = (*TokenRefresher)(nil)

func NewTokenRefresher(
	sender api.Sender,
	store repositories.TokenStoreInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) *TokenRefresher {
	return &TokenRefresher{
		sender:  sender,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Refresh exchanges refreshToken for a new pair and persists it. Every failure
// clears the session and returns a session expired error, except when ctx
// ended first: the caller gave up and the stored pair is left untouched.
func (r *TokenRefresher) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	start := time.Now()

	pair, err := r.exchange(ctx, refreshToken)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.record("token.refresh.abandoned", start)
			r.logger.Debug("Token refresh abandoned by caller", "error", ctxErr)
			return nil, apperrors.NewNetworkError(apperrors.NetworkTimeout, ctxErr)
		}
		r.record("token.refresh.failed", start)
		if clearErr := r.store.ClearAll(); clearErr != nil {
			r.logger.Error("Failed to clear session after refresh failure", "error", clearErr)
		}
		r.logger.Warn("Token refresh failed", "error", err)
		return nil, apperrors.NewSessionExpiredError(err)
	}

	r.record("token.refresh.success", start)
	r.logger.Debug("Token pair refreshed")
	return pair, nil
}

func (r *TokenRefresher) exchange(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	req, err := api.NewRequest(http.MethodPost, "/auth/refresh", dto.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := r.sender.Send(ctx, req, "")
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}

	pair := body.TokenPair()
	if pair.AccessToken == "" {
		return nil, errors.New("refresh response carried no access token")
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}

	if err := r.store.SetTokens(pair); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}
	return &pair, nil
}

func (r *TokenRefresher) record(counter string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.IncrementCounter(counter, nil)
	r.metrics.RecordProcessingTime("token.refresh", time.Since(start))
}
