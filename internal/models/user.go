package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

var (
	ErrInvalidUserID = errors.New("user id must be a string or a number")
	ErrMissingUserID = errors.New("user id is required")
	ErrMissingEmail  = errors.New("user email is required")
)

// UserID is the backend's user identifier. It decodes from either a JSON
// string or a JSON number and always encodes back as the form it was read in.
type UserID struct {
	value   string
	numeric bool
}

// NewUserID builds an id from its text. Canonical integers encode as JSON numbers.
func NewUserID(value string) UserID {
	n, err := strconv.ParseInt(value, 10, 64)
	return UserID{value: value, numeric: err == nil && strconv.FormatInt(n, 10) == value}
}

func (id UserID) String() string {
	return id.value
}

func (id UserID) IsZero() bool {
	return id.value == ""
}

func (id UserID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = UserID{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidUserID
	}
	*id = UserID{value: n.String(), numeric: true}
	return nil
}

// User is the cached copy of the authenticated user's profile.
type User struct {
	ID        UserID     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (u *User) Validate() error {
	if u.ID.IsZero() {
		return ErrMissingUserID
	}
	if u.Email == "" {
		return ErrMissingEmail
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role.IsPrivileged()
}

func (u *User) IsPendingApproval() bool {
	return u.Role.IsPendingApproval()
}
