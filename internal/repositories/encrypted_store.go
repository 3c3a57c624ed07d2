package repositories

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrDecrypt       = errors.New("failed to decrypt session entry")
	ErrInvalidKeyLen = errors.New("encryption key must be 32 bytes")
)

// EncryptedStore seals values with secretbox before handing them to the inner store.
// Keys are stored in the clear.
type EncryptedStore struct {
	inner KeyValueStore
	key   [32]byte
}

var _ KeyValueStore = (*EncryptedStore)(nil)

func NewEncryptedStore(inner KeyValueStore, key []byte) (*EncryptedStore, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeyLen
	}

	store := &EncryptedStore{inner: inner}
	copy(store.key[:], key)
	return store, nil
}

func (s *EncryptedStore) Get(key string) (string, error) {
	sealed, err := s.inner.Get(key)
	if err != nil {
		return "", err
	}
	return s.open(sealed)
}

func (s *EncryptedStore) Set(key, value string) error {
	if value == "" {
		return s.inner.Delete(key)
	}
	sealed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(key, sealed)
}

func (s *EncryptedStore) SetMany(entries map[string]string) error {
	sealedEntries := make(map[string]string, len(entries))
	for key, value := range entries {
		// removals pass through unsealed so the inner store still sees them as empty
		if value == "" {
			sealedEntries[key] = ""
			continue
		}
		sealed, err := s.seal(value)
		if err != nil {
			return err
		}
		sealedEntries[key] = sealed
	}
	return s.inner.SetMany(sealedEntries)
}

func (s *EncryptedStore) Delete(keys ...string) error {
	return s.inner.Delete(keys...)
}

func (s *EncryptedStore) Close() error {
	return s.inner.Close()
}

func (s *EncryptedStore) seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (s *EncryptedStore) open(sealed string) (string, error) {
	box, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrDecrypt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plaintext, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plaintext), nil
}
