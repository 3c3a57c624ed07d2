package models

import "time"

// SessionEntry is one persisted key of the local session store.
type SessionEntry struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (e *SessionEntry) TableName() string {
	return "session_entries"
}
