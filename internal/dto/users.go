package dto

import "vss-session/internal/models"

// ListUsersParams are the query parameters of the admin user listing
type ListUsersParams struct {
	Page      int          `query:"page"`
	Limit     int          `query:"limit"`
	Search    string       `query:"search"`
	Role      *models.Role `query:"role"`
	SortBy    string       `query:"sort_by"`
	SortOrder string       `query:"sort_order"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// UsersListResponse represents a paginated list of users
type UsersListResponse struct {
	Users      []*models.User `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// UpdateRoleRequest changes a user's role. The backend expects the numeric code.
type UpdateRoleRequest struct {
	Role int `json:"role"`
}
