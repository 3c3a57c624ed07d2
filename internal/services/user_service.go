package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"vss-session/internal/api"
	"vss-session/internal/dto"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/models"
	"vss-session/internal/repositories"
)

var ErrEmptyUserID = errors.New("user id is required")

// UserService performs admin user management through the request pipeline
type UserService struct {
	requester api.Requester
	store     repositories.TokenStoreInterface
	audit     AuditLoggerInterface
	logger    *slog.Logger
}

func NewUserService(requester api.Requester, store repositories.TokenStoreInterface, audit AuditLoggerInterface, logger *slog.Logger) UserServiceInterface {
	return &UserService{
		requester: requester,
		store:     store,
		audit:     audit,
		logger:    logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context, params dto.ListUsersParams) (*dto.UsersListResponse, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	req, err := api.NewRequest(http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	req.Query = listQuery(params)

	resp, err := s.requester.Do(ctx, req)
	if err != nil {
		return nil, translateError(err, apperrors.AuthSessionInvalid)
	}

	var body dto.UsersListResponse
	if err := resp.Decode(&body); err != nil {
		return nil, apperrors.NewBadResponseError(err)
	}
	return &body, nil
}

// UpdateUserRole sends the role's numeric code, which is what the backend stores.
func (s *UserService) UpdateUserRole(ctx context.Context, userID string, role models.Role) (*models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperrors.NewValidationError("id", apperrors.ValidationRequiredField, ErrEmptyUserID.Error())
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role", apperrors.ValidationInvalidFormat, "Unknown role: "+role.String())
	}

	req, err := api.NewRequest(http.MethodPatch, "/users/"+url.PathEscape(userID)+"/role", dto.UpdateRoleRequest{Role: role.Code()})
	if err != nil {
		return nil, err
	}

	resp, err := s.requester.Do(ctx, req)
	if err != nil {
		return nil, translateError(err, apperrors.AuthSessionInvalid)
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		return nil, apperrors.NewBadResponseError(err)
	}
	user := body.Profile()
	if user == nil {
		return nil, apperrors.NewBadResponseError(ErrMissingProfile)
	}

	s.audit.LogRoleChange(ctx, s.store.GetUser(), userID, role)
	return user, nil
}

// ApproveUser promotes a pending user to the standard role.
func (s *UserService) ApproveUser(ctx context.Context, userID string) (*models.User, error) {
	return s.UpdateUserRole(ctx, userID, models.RoleColab)
}

// RevokeUser sends a user back to pending approval.
func (s *UserService) RevokeUser(ctx context.Context, userID string) (*models.User, error) {
	return s.UpdateUserRole(ctx, userID, models.RolePendingApproval)
}

func (s *UserService) requireAdmin() error {
	user := s.store.GetUser()
	if user == nil {
		return apperrors.NewAuthenticationError(apperrors.SessionNotAuthenticated, "", http.StatusUnauthorized, nil)
	}
	if !user.IsAdmin() {
		return apperrors.NewAuthenticationError(apperrors.AuthInsufficientPermission, "", http.StatusForbidden, nil)
	}
	return nil
}

func listQuery(params dto.ListUsersParams) url.Values {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Role != nil && params.Role.Code() != 0 {
		query.Set("role", strconv.Itoa(params.Role.Code()))
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}
	if params.SortOrder != "" {
		query.Set("sort_order", params.SortOrder)
	}
	return query
}

// translateError maps a transport failure to the session error taxonomy. 401s
// carry unauthorized as their code; errors that already have a kind pass through.
func translateError(err error, unauthorized apperrors.ErrorCode) error {
	if apperrors.KindOf(err) != 0 {
		return err
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusUnauthorized:
			return apperrors.NewAuthenticationError(unauthorized, statusErr.Message, statusErr.Status, err)
		case http.StatusForbidden:
			return apperrors.NewAuthenticationError(apperrors.AuthInsufficientPermission, statusErr.Message, statusErr.Status, err)
		}
		return apperrors.NewServerError(statusErr.Status, statusErr.Message, err)
	}
	return err
}
