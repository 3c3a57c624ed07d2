package repositories

import (
	"errors"
	"fmt"
	"time"

	"vss-session/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists session entries in the session_entries table
type SQLStore struct {
	db      *gorm.DB
	closeFn func() error
}

var _ KeyValueStore = (*SQLStore)(nil)

// NewSQLStore wraps an open database. closeFn, if set, runs on Close.
func NewSQLStore(db *gorm.DB, closeFn func() error) *SQLStore {
	return &SQLStore{
		db:      db,
		closeFn: closeFn,
	}
}

func (s *SQLStore) Get(key string) (string, error) {
	var entry models.SessionEntry

	if err := s.db.Where(&models.SessionEntry{Key: key}).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get session entry %s: %w", key, err)
	}

	return entry.Value, nil
}

func (s *SQLStore) Set(key, value string) error {
	if value == "" {
		return s.Delete(key)
	}
	if err := upsert(s.db, key, value); err != nil {
		return fmt.Errorf("failed to set session entry %s: %w", key, err)
	}
	return nil
}

// SetMany upserts and deletes in a single transaction.
func (s *SQLStore) SetMany(entries map[string]string) error {
	var removed []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range entries {
			if value == "" {
				removed = append(removed, key)
				continue
			}
			if err := upsert(tx, key, value); err != nil {
				return err
			}
		}
		if len(removed) == 0 {
			return nil
		}
		return tx.Where(map[string]any{"key": removed}).Delete(&models.SessionEntry{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to set session entries: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where(map[string]any{"key": keys}).Delete(&models.SessionEntry{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete session entries: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func upsert(db *gorm.DB, key, value string) error {
	entry := &models.SessionEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
}
