package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vss-session/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrEmptyToken     = errors.New("empty token")
)

// TokenService inspects access tokens issued by the backend. Signatures are
// not verified; the backend remains the authority on validity.
type TokenService struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenService creates a token service using the wall clock
func NewTokenService() TokenServiceInterface {
	return NewTokenServiceWithClock(time.Now)
}

// NewTokenServiceWithClock creates a token service that reads the time from now
func NewTokenServiceWithClock(now func() time.Time) *TokenService {
	return &TokenService{
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
		now:    now,
	}
}

// DecodeToken returns the payload of a header.payload.signature token. Any
// structural problem yields an error wrapping ErrMalformedToken.
func (ts *TokenService) DecodeToken(token string) (*models.DecodedToken, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, ErrEmptyToken)
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(segments))
	}

	payload, err := ts.parser.DecodeSegment(segments[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding: %w", ErrMalformedToken, err)
	}

	var claims models.TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload json: %w", ErrMalformedToken, err)
	}

	return claims.Decoded(), nil
}

// IsTokenExpired reports true when the token cannot be decoded, has no expiry,
// or its expiry is in the past.
func (ts *TokenService) IsTokenExpired(token string) bool {
	decoded, err := ts.DecodeToken(token)
	if err != nil {
		return true
	}
	return decoded.ExpiredAt(ts.now())
}

// GetTokenExpiry returns the expiry time of token.
func (ts *TokenService) GetTokenExpiry(token string) (time.Time, error) {
	decoded, err := ts.DecodeToken(token)
	if err != nil {
		return time.Time{}, err
	}
	if !decoded.HasExpiry() {
		return time.Time{}, fmt.Errorf("%w: no exp claim", ErrMalformedToken)
	}
	return time.Unix(decoded.ExpiresAt, 0), nil
}
