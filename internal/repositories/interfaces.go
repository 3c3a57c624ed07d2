package repositories

import (
	"vss-session/internal/models"
)

// KeyValueStore is the persistence backend behind the token store
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when key is absent
	Get(key string) (string, error)
	// Set writes one entry; an empty value removes the key
	Set(key, value string) error
	// SetMany writes all entries in one atomic operation. An entry with an
	// empty value removes its key in that same operation.
	SetMany(entries map[string]string) error
	// Delete removes the keys; absent keys are not an error
	Delete(keys ...string) error
	Close() error
}

// TokenInspector decodes access tokens without verifying their signature
type TokenInspector interface {
	DecodeToken(token string) (*models.DecodedToken, error)
	IsTokenExpired(token string) bool
}

// TokenStoreInterface holds the session's tokens and cached profile
type TokenStoreInterface interface {
	SetAccessToken(token string) error
	GetAccessToken() string
	SetRefreshToken(token string) error
	GetRefreshToken() string
	SetTokens(pair models.TokenPair) error
	GetTokens() models.TokenPair
	ClearTokens() error
	SetUser(user *models.User) error
	GetUser() *models.User
	ClearUser() error
	SetSession(pair models.TokenPair, user *models.User) error
	ClearAll() error
	IsAuthenticated() bool
	DecodeToken(token string) (*models.DecodedToken, error)
	IsTokenExpired(token string) bool
}
