package repositories

import (
	"errors"
	"sync"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrStoreClosed = errors.New("store is closed")
)

// MemoryStore keeps session entries in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	closed  bool
}

var _ KeyValueStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}
	value, ok := s.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

func (s *MemoryStore) SetMany(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	for key, value := range entries {
		if value == "" {
			delete(s.entries, key)
			continue
		}
		s.entries[key] = value
	}
	return nil
}

func (s *MemoryStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
