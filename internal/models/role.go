package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the access level the backend assigns to a user.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleColab           Role = "colab"
	RolePendingApproval Role = "pending_approval"
)

// roleCodes are the numeric identifiers the backend stores roles under.
var roleCodes = map[Role]int{
	RoleAdmin:           1,
	RoleColab:           2,
	RolePendingApproval: 3,
}

// RoleFromCode maps a numeric role to its name. Unknown codes keep their number.
func RoleFromCode(code int) Role {
	for role, c := range roleCodes {
		if c == code {
			return role
		}
	}
	return Role(fmt.Sprintf("role_%d", code))
}

// ParseRole normalises the spellings the backend has used over time
// ("ADMIN", "pending-approval", "PENDING_APPROVAL"). Unknown values are kept as-is.
func ParseRole(raw string) Role {
	normalised := strings.ToLower(strings.TrimSpace(raw))
	normalised = strings.ReplaceAll(normalised, "-", "_")
	return Role(normalised)
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleColab, RolePendingApproval:
		return true
	}
	return false
}

func (r Role) IsPrivileged() bool {
	return r == RoleAdmin
}

func (r Role) IsPendingApproval() bool {
	return r == RolePendingApproval
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalText lets Role decode through ParseRole from JSON and query strings.
func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}

// Code returns the backend's numeric identifier, or 0 for unknown roles.
func (r Role) Code() int {
	return roleCodes[r]
}

// UnmarshalJSON accepts a role name or its numeric code.
func (r *Role) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*r = RoleFromCode(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("invalid role %s: %w", string(data), err)
	}
	*r = ParseRole(name)
	return nil
}
