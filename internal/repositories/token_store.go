package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"vss-session/internal/models"
)

const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
)

var sessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserData}

// TokenStore holds the access token, refresh token and cached profile of the
// current session on top of a KeyValueStore
type TokenStore struct {
	mu        sync.Mutex
	backend   KeyValueStore
	inspector TokenInspector
	log       *slog.Logger
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a token store backed by backend
func NewTokenStore(backend KeyValueStore, inspector TokenInspector, log *slog.Logger) *TokenStore {
	return &TokenStore{
		backend:   backend,
		inspector: inspector,
		log:       log,
	}
}

func (s *TokenStore) SetAccessToken(token string) error {
	return s.SetTokens(models.TokenPair{AccessToken: token, RefreshToken: s.GetRefreshToken()})
}

func (s *TokenStore) GetAccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(KeyAccessToken)
}

func (s *TokenStore) SetRefreshToken(token string) error {
	return s.SetTokens(models.TokenPair{AccessToken: s.GetAccessToken(), RefreshToken: token})
}

func (s *TokenStore) GetRefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(KeyRefreshToken)
}

// SetTokens writes both tokens in one backend call. An empty token removes its key.
func (s *TokenStore) SetTokens(pair models.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeTokens(pair, nil)
}

func (s *TokenStore) GetTokens() models.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TokenPair{
		AccessToken:  s.get(KeyAccessToken),
		RefreshToken: s.get(KeyRefreshToken),
	}
}

func (s *TokenStore) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(KeyAccessToken, KeyRefreshToken); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

func (s *TokenStore) SetUser(user *models.User) error {
	if user == nil {
		return s.ClearUser()
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Set(KeyUserData, string(data)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// GetUser returns the cached profile, or nil when none is stored or the stored
// data cannot be decoded.
func (s *TokenStore) GetUser() *models.User {
	s.mu.Lock()
	raw := s.get(KeyUserData)
	s.mu.Unlock()

	if raw == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("Discarding malformed cached user", "error", err)
		return nil
	}
	return &user
}

func (s *TokenStore) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(KeyUserData); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}

// SetSession persists tokens and profile together so that no reader observes
// one without the other.
func (s *TokenStore) SetSession(pair models.TokenPair, user *models.User) error {
	if user == nil {
		return errors.New("session user cannot be nil")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeTokens(pair, map[string]string{KeyUserData: string(data)})
}

// ClearAll removes tokens and profile in one call.
func (s *TokenStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(sessionKeys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an access token is present. Expiry is not checked.
func (s *TokenStore) IsAuthenticated() bool {
	return s.GetAccessToken() != ""
}

func (s *TokenStore) DecodeToken(token string) (*models.DecodedToken, error) {
	return s.inspector.DecodeToken(token)
}

func (s *TokenStore) IsTokenExpired(token string) bool {
	return s.inspector.IsTokenExpired(token)
}

func (s *TokenStore) get(key string) string {
	value, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.log.Error("Failed to read session entry", "key", key, "error", err)
		}
		return ""
	}
	return value
}

func (s *TokenStore) writeTokens(pair models.TokenPair, extra map[string]string) error {
	// empty tokens stay in the map so SetMany removes them in the same write
	entries := map[string]string{
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
	}
	for key, value := range extra {
		entries[key] = value
	}

	if err := s.backend.SetMany(entries); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}
